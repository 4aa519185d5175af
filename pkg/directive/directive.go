package directive

import "fmt"

// Directive is one machine-readable marker embedded in generated text. The
// set of implementations is closed: AudioRef, Recitation, RegistrationCTA.
type Directive interface {
	Marker() string
	directive()
}

// AudioRef asks for the admin-recorded example clip of a knowledge record.
type AudioRef struct {
	ID string
}

// Recitation asks for a reference recitation of one verse.
type Recitation struct {
	Chapter int
	Verse   int
}

// RegistrationCTA asks for the class registration call to action.
type RegistrationCTA struct{}

func (d AudioRef) Marker() string {
	return fmt.Sprintf("[[AUDIO:%s]]", d.ID)
}

func (d Recitation) Marker() string {
	return fmt.Sprintf("[[RECITE:%d:%d]]", d.Chapter, d.Verse)
}

func (RegistrationCTA) Marker() string {
	return "[[DAFTAR_KELAS]]"
}

func (AudioRef) directive()        {}
func (Recitation) directive()      {}
func (RegistrationCTA) directive() {}
