package source

import (
	rich "github.com/demurgos/rich"
	drvgojson "github.com/demurgos/rich/source/gojson"
)

// init in a separate package to avoid import cycle in root. This sets go-json as default driver.
func init() { rich.SetJSONDriver(drvgojson.Driver()) }
