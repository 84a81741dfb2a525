package environment

import (
	"os"
	"strings"
)

// Variable selects the runtime environment. Any case of "dev" turns on
// debug logging regardless of the configured level.
const Variable = "MINUI_ENV"

func IsDevelopment() bool {
	return strings.EqualFold(os.Getenv(Variable), "dev")
}
