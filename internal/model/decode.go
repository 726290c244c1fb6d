package model

import (
	"encoding/json"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/go-playground/validator/v10"
)

// SchemaError reports a remote payload that could not be decoded or failed validation.
type SchemaError struct {
	What string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s payload: %v", e.What, e.Err)
}

// Unwrap exposes both the cause and the errdefs data-loss class.
func (e *SchemaError) Unwrap() []error {
	return []error{errdefs.ErrDataLoss, e.Err}
}

// Decoder turns raw API responses into validated records.
type Decoder struct {
	validate *validator.Validate
}

func NewDecoder() *Decoder {
	return &Decoder{validate: validator.New()}
}

// Module decodes and validates a full module state.
func (d *Decoder) Module(raw []byte) (*Module, error) {
	var m Module
	if err := d.decode("module", raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// AccountModules decodes and validates the module list of an account.
func (d *Decoder) AccountModules(raw []byte) ([]AccountModule, error) {
	var mods []AccountModule
	if err := json.Unmarshal(raw, &mods); err != nil {
		return nil, &SchemaError{What: "module list", Err: err}
	}
	for i := range mods {
		if err := d.validate.Struct(&mods[i]); err != nil {
			return nil, &SchemaError{What: "module list", Err: fmt.Errorf("element %d: %w", i, err)}
		}
	}
	return mods, nil
}

// Authentication decodes a login response.
func (d *Decoder) Authentication(raw []byte) (*Authentication, error) {
	var a Authentication
	if err := d.decode("authentication", raw, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (d *Decoder) decode(what string, raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &SchemaError{What: what, Err: err}
	}
	if err := d.validate.Struct(out); err != nil {
		return &SchemaError{What: what, Err: err}
	}
	return nil
}
