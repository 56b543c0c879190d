package stderr

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/llehouerou/liveradio/internal/logging"
)

// forward logs every non-blank line read from r until EOF.
func forward(r io.Reader, log zerolog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			log.Warn().Str(logging.FieldSource, "stderr").Msg(line)
		}
	}
}
