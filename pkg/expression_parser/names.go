package expression_parser

// Описание разрешённой функции: допустимое число аргументов, MaxArgs < 0 означает "сколько угодно"
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int
}

// Полный список имён, доступных в выражении. Всё остальное отклоняется ещё при разборе
var (
	functions = map[string]Function{
		"sin":       {"sin", 1, 1},
		"cos":       {"cos", 1, 1},
		"tan":       {"tan", 1, 1},
		"asin":      {"asin", 1, 1},
		"acos":      {"acos", 1, 1},
		"atan":      {"atan", 1, 1},
		"log":       {"log", 1, 2},
		"log10":     {"log10", 1, 1},
		"log2":      {"log2", 1, 1},
		"exp":       {"exp", 1, 1},
		"sqrt":      {"sqrt", 1, 1},
		"cbrt":      {"cbrt", 1, 1},
		"abs":       {"abs", 1, 1},
		"factorial": {"factorial", 1, 1},
		"min":       {"min", 2, -1},
		"max":       {"max", 2, -1},
		"round":     {"round", 1, 2},
	}

	constants = map[string]struct{}{
		"pi": {},
		"e":  {},
	}
)

func LookupFunction(name string) (Function, bool) {
	f, ok := functions[name]
	return f, ok
}

func IsConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// IsReserved сообщает, занято ли имя функцией или константой
func IsReserved(name string) bool {
	_, fn := functions[name]
	return fn || IsConstant(name)
}
