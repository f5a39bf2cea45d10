package entity

import "persona-chat-be/pkg/extract"

// Persona is one assistant behavior mode: a named system prompt plus
// optional training documents injected at send time.
type Persona struct {
	Id              int
	Name            string
	Prompt          string
	TrainingDocs    []extract.FileDescriptor
	LogoURL         string
	IsCustom        bool
	IsAddToolMarker bool
}

// Usable reports whether the persona can drive an inference turn. The
// "add tool" sentinel and any prompt-less entry cannot.
func (p Persona) Usable() bool {
	return !p.IsAddToolMarker && p.Prompt != ""
}
