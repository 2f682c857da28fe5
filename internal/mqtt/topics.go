package mqtt

import (
	"fmt"

	"github.com/disersoft-code/traductor-pmv/internal/config"
	"github.com/disersoft-code/traductor-pmv/internal/util"
)

type Topics struct {
	prefix string
}

func NewTopics(prefix string) *Topics {
	return &Topics{prefix: prefix}
}

func (t *Topics) Status() string {
	return fmt.Sprintf("%s/status", t.prefix)
}

func (t *Topics) Events() string {
	return fmt.Sprintf("%s/events", t.prefix)
}

func (t *Topics) Sign(sign config.SignConfig) string {
	return fmt.Sprintf("%s/sign/%s", t.prefix, util.Slugify(sign.Name))
}

func (t *Topics) SignCommand(sign config.SignConfig) string {
	return fmt.Sprintf("%s/sign/%s/command", t.prefix, util.Slugify(sign.Name))
}
