package output

// Fake records dispatched text for tests.
type Fake struct {
	Clipboard []string
	Typed     []string

	ClipboardErr error
	TypeErr      error
}

func (f *Fake) SetClipboard(text string) error {
	f.Clipboard = append(f.Clipboard, text)
	return f.ClipboardErr
}

func (f *Fake) TypeText(text string) error {
	f.Typed = append(f.Typed, text)
	return f.TypeErr
}

func (f *Fake) Commands(bool) []string { return nil }
