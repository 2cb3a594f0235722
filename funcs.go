package symdiff

// Funcs is the list of reserved function names.
var Funcs = []string{"sin", "cos", "ln", "exp"}

func isfunc(name string) bool {
	for _, f := range Funcs {
		if name == f {
			return true
		}
	}
	return false
}

// funcnames maps function node kinds to their names.
var funcnames = [...]string{
	nodeSin: "sin",
	nodeCos: "cos",
	nodeLn:  "ln",
	nodeExp: "exp",
}

// funckind gets the node kind for a function name. If there is no such
// function, the result is nodeNone.
func funckind(name string) nodeKind {
	switch name {
	case "sin":
		return nodeSin
	case "cos":
		return nodeCos
	case "ln":
		return nodeLn
	case "exp":
		return nodeExp
	default:
		return nodeNone
	}
}

// DomainError is an error returned when an operation is applied to arguments
// outside its domain. Only the Real logarithm produces domain errors.
type DomainError struct {
	// X is the formatted out-of-domain argument.
	X string
	// Func is the name of the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
