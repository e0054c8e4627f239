package services

// SampleJobDescription is served to the upload page's "use sample" button.
const SampleJobDescription = `We are looking for a skilled Go Developer to join our team. The ideal candidate will have experience building web services in Go, and proficiency with its standard tooling.

Requirements:
- 3+ years of experience in Go development
- Strong knowledge of HTTP frameworks (Fiber, Gin, net/http)
- Experience with databases (PostgreSQL, MySQL)
- Familiarity with version control (Git)
- Knowledge of REST APIs and microservices
- Experience with testing tools (testify, go test)

Responsibilities:
- Develop and maintain web applications using Go
- Collaborate with cross-functional teams
- Write clean, maintainable code
- Participate in code reviews
- Troubleshoot and debug applications

Nice to have:
- Experience with cloud platforms (AWS, GCP)
- Knowledge of containerization (Docker)
- Familiarity with CI/CD pipelines`
