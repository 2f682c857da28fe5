package mqtt

import (
	"fmt"
	"strings"
)

// BrokerURL turns the configured host into a paho broker URL. The host may
// carry its own scheme and port ("mqtt://broker:1884", "ssl://broker").
func BrokerURL(host string, port int) string {
	scheme := "tcp"
	for _, prefix := range []string{"mqtt://", "tcp://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	for _, secure := range []string{"mqtts://", "ssl://", "tls://"} {
		if strings.HasPrefix(host, secure) {
			host = strings.TrimPrefix(host, secure)
			scheme = "ssl"
		}
	}
	if strings.Contains(host, ":") {
		return fmt.Sprintf("%s://%s", scheme, host)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}
