package form

// fileSelector holds the current selection and drop-zone affordance.
type fileSelector struct {
	strictMIME bool
	maxSize    int64
	selected   *SelectedFile
	dragOver   bool
}

// choose validates f and replaces the selection only when it is accepted.
func (s *fileSelector) choose(f FileHandle) error {
	if err := ValidateFile(f, s.strictMIME, s.maxSize); err != nil {
		return err
	}

	s.selected = &SelectedFile{
		Name:      f.Name,
		SizeBytes: f.Size,
		MimeType:  f.MimeType,
	}
	return nil
}

func (s *fileSelector) clear() {
	s.selected = nil
}

func (s *fileSelector) view() (DropZoneView, FileInfoView) {
	if s.selected == nil {
		return DropZoneView{Visible: true, DragOver: s.dragOver}, FileInfoView{}
	}

	return DropZoneView{Visible: false, DragOver: s.dragOver}, FileInfoView{
		Visible: true,
		Name:    s.selected.Name,
		SizeMB:  FormatSizeMB(s.selected.SizeBytes),
	}
}
