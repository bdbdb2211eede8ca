package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/kressler/fast-containers/internal/sampler"
)

// consoleProgress renders sampler progress callbacks as the familiar
// pass-by-pass log:
//
//	Pass 3/10 (forward: a → b → c)
//	  Running: a... ✓ (1.2s)
type consoleProgress struct {
	c *Console
}

// Progress returns a sampler.Progress that renders to this console.
func (c *Console) Progress() sampler.Progress {
	return &consoleProgress{c: c}
}

func (p *consoleProgress) PassStarted(pass, passes int, order []string, reversed bool) {
	direction := "forward"
	if reversed {
		direction = "reverse"
	}
	fmt.Fprintf(p.c.w, "\nPass %d/%d (%s: %s)\n",
		pass, passes, direction, strings.Join(order, " → "))
}

func (p *consoleProgress) InvocationStarted(config string) {
	fmt.Fprintf(p.c.w, "  Running: %s...", p.c.scheme.Config.Sprint(config))
}

func (p *consoleProgress) InvocationFinished(config string, elapsed time.Duration, err error) {
	if err != nil {
		fmt.Fprintf(p.c.w, " %s\n", ErrorIcon(p.c.noColor))
		return
	}
	fmt.Fprintf(p.c.w, " %s (%s)\n", SuccessIcon(p.c.noColor), elapsed.Round(time.Millisecond))
}
