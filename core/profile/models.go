package profile

import "github.com/trezcool/missingwork/core"

// Profile identifies the operator of the app.
type Profile struct {
	Name    string `json:"name"`
	Logo    string `json:"schoolLogo"` // data URI
	AppName string `json:"appName"`
}

// Setup contains information needed to complete the first-run setup.
type Setup struct {
	Name    string `json:"name" validate:"notblank"`
	AppName string `json:"appName" validate:"notblank"`
	Logo    string `json:"schoolLogo" validate:"notblank,datauri"`
}

func (s *Setup) Validate(v *core.Validator) error {
	s.Name = core.CleanString(s.Name)
	s.AppName = core.CleanString(s.AppName)
	s.Logo = core.CleanString(s.Logo)
	return v.Check(s, func(string) error { return ErrIncompleteSetup })
}
