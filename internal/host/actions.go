package host

import (
	"fmt"
	"io"
	"time"

	"github.com/aretw0/graft/pkg/defaultable"
	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/aretw0/graft/pkg/tree"
)

// Actions returns the commands definition files may name. Output goes to out.
func Actions(out io.Writer) map[string]tree.Command[Sender] {
	return map[string]tree.Command[Sender]{
		"noop": func(tree.Context[Sender]) (int, error) { return 0, nil },
		"say": func(ctx tree.Context[Sender]) (int, error) {
			msg, err := dispatch.Get[string](ctx, "message")
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(out, "[%s] %s\n", ctx.Source().Name, msg)
			return 1, nil
		},
		"teleport": func(ctx tree.Context[Sender]) (int, error) {
			c, err := wrap(ctx)
			if err != nil {
				return 0, err
			}
			world, err := defaultable.Required[string](c, "world")
			if err != nil {
				return 0, err
			}
			who, err := defaultable.Optional(c, "player", ctx.Source().Name)
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(out, "%s -> %s\n", who, world)
			return 1, nil
		},
		"wait": func(ctx tree.Context[Sender]) (int, error) {
			c, err := wrap(ctx)
			if err != nil {
				return 0, err
			}
			d, err := defaultable.Optional(c, "duration", time.Minute)
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(out, "waiting %s\n", d)
			return int(d.Seconds()), nil
		},
	}
}

func wrap(ctx tree.Context[Sender]) (*defaultable.Context[Sender], error) {
	parsed, ok := ctx.(*dispatch.Context[Sender])
	if !ok {
		return nil, fmt.Errorf("unexpected context %T", ctx)
	}
	return defaultable.Wrap(parsed), nil
}
