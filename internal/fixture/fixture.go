// Package fixture embeds captured API responses used by tests across packages.
//
// module.json holds 40 zones (10 enabled) and 5 global schedules.
package fixture

import (
	_ "embed"
	"encoding/json"

	"github.com/bassista/go_touchline/internal/model"
)

// ModuleID is the udid of the only module in modules.json.
const ModuleID = "1234a5678a9123a456a7891234a56789"

//go:embed module.json
var moduleJSON []byte

//go:embed modules.json
var modulesJSON []byte

// ModuleJSON returns the raw module response.
func ModuleJSON() []byte { return moduleJSON }

// ModulesJSON returns the raw module list response.
func ModulesJSON() []byte { return modulesJSON }

// Module decodes a fresh copy of module.json. It panics on decode errors.
func Module() *model.Module {
	var m model.Module
	if err := json.Unmarshal(moduleJSON, &m); err != nil {
		panic(err)
	}
	return &m
}

// Modules decodes a fresh copy of modules.json. It panics on decode errors.
func Modules() []model.AccountModule {
	var mods []model.AccountModule
	if err := json.Unmarshal(modulesJSON, &mods); err != nil {
		panic(err)
	}
	return mods
}
