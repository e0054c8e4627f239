package form

// FileInput keeps a host file input in step with the controller's selection.
// T is the host's native file list. A native form post reads the input, so
// after a rejected pick the input gets the previously accepted list back.
// Methods are meant to be called from the host's event loop only.
type FileInput[T any] struct {
	ctrl     *Controller
	set      func(T)
	clear    func()
	accepted T
	has      bool
}

// NewFileInput binds set (put a list into the input) and clear (empty it).
func NewFileInput[T any](ctrl *Controller, set func(T), clear func()) *FileInput[T] {
	return &FileInput[T]{ctrl: ctrl, set: set, clear: clear}
}

// Pick handles a change of the input itself. An empty pick or a rejected
// file restores the input.
func (in *FileInput[T]) Pick(list T, files []FileHandle) error {
	if len(files) == 0 {
		in.restore()
		return nil
	}

	if err := in.ctrl.Browse(files[0]); err != nil {
		in.restore()
		return err
	}

	in.accept(list)
	return nil
}

// Drop handles files dropped outside the input and copies them into it once accepted.
func (in *FileInput[T]) Drop(list T, files []FileHandle) error {
	if err := in.ctrl.Drop(files); err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	in.accept(list)
	in.set(list)
	return nil
}

// Remove clears both the selection and the input.
func (in *FileInput[T]) Remove() {
	var zero T
	in.accepted, in.has = zero, false
	in.ctrl.Remove()
	in.clear()
}

func (in *FileInput[T]) accept(list T) {
	in.accepted, in.has = list, true
}

func (in *FileInput[T]) restore() {
	if in.has {
		in.set(in.accepted)
		return
	}
	in.clear()
}
