package raster

// IOError marks failures of the file system (unwritable folder, full disk, missing permissions, ...) while reading or
// writing grid files. Use errors.As to detect it.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return "I/O error on " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func newIOError(path string, err error) error {
	return &IOError{Path: path, Err: err}
}
