package homeassistant

import (
	"strings"

	"github.com/disersoft-code/traductor-pmv/internal/config"
	"github.com/disersoft-code/traductor-pmv/internal/util"
)

// objectID is the discovery object id of one entity of a sign, e.g.
// "via_norte_km_12_brightness".
func objectID(sign config.SignConfig, entity string) string {
	return strings.ReplaceAll(util.Slugify(sign.Name), "-", "_") + "_" + entity
}

func deviceInfo(sign config.SignConfig) map[string]interface{} {
	return map[string]interface{}{
		"name":         sign.Name,
		"identifiers":  []string{"pmv_" + strings.ReplaceAll(sign.IP, ".", "_")},
		"manufacturer": "NTCIP 1203",
		"model":        "Dynamic message sign",
	}
}
