package common

// Commander accumulates an argument vector for a child process as ordered
// string tokens. Tokens are never joined into one shell string, so values
// with spaces stay intact and no quoting rules apply.
type Commander struct {
	stack []string
}

func NewCommander(parts ...string) *Commander {
	return &Commander{stack: append([]string{}, parts...)}
}

// Option appends "name=value" as one token. Empty values append nothing.
func (it *Commander) Option(name, value string) *Commander {
	if len(value) > 0 {
		it.stack = append(it.stack, name+"="+value)
	}
	return it
}

func (it *Commander) More(parts ...string) *Commander {
	it.stack = append(it.stack, parts...)
	return it
}

func (it *Commander) CLI() []string {
	return it.stack
}
