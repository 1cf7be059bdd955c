package tui

type exportDoneMsg struct {
	path string
	err  error
}

type preferencesSavedMsg struct {
	err error
}
