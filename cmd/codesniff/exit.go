package main

// Exit codes of every command.
const (
	exitClean    = 0
	exitFindings = 1
	exitUnstable = 2 // исправления не стабилизировались
	exitUsage    = 3 // неверные флаги, конфиг, ввод-вывод
)

// exitError carries an exit code through cobra. A nil err means the
// reason was already printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

func silentExit(code int) error {
	if code == exitClean {
		return nil
	}
	return &exitError{code: code}
}
