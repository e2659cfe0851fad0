package game

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-console/model"
	"github.com/sheikhrachel/gol-console/utils"
)

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Errorf("%q is not a number", f)
		}
		out[i] = n
	}
	return out, nil
}

func oneOf(options ...string) func(string) error {
	return func(s string) error {
		for _, o := range options {
			if strings.EqualFold(s, o) {
				return nil
			}
		}
		return errors.Errorf("please enter one of: %s", strings.Join(options, ", "))
	}
}

// PromptConfig asks for board size, seeding, update mode and timer,
// starting from cfg and returning the answered copy.
func PromptConfig(ctx context.Context, c *Console, cfg utils.Config) (utils.Config, error) {
	_, err := c.Ask(ctx, "Board size WIDTH HEIGHT: ", func(s string) error {
		nums, err := parseInts(strings.Fields(s))
		if err != nil {
			return err
		}
		if len(nums) != 2 {
			return errors.New("enter two numbers, e.g. 40 20")
		}
		if _, err := model.NewGridWithLimit(nums[0], nums[1], cfg.MaxCells); err != nil {
			return err
		}
		cfg.Width, cfg.Height = nums[0], nums[1]
		return nil
	})
	if err != nil {
		return cfg, err
	}

	seeding, err := c.Ask(ctx, "Initial board 'random', 'build' or 'empty': ",
		oneOf(utils.SeedingRandom, utils.SeedingBuild, utils.SeedingEmpty))
	if err != nil {
		return cfg, err
	}
	cfg.Seeding = strings.ToLower(seeding)

	mode, err := c.Ask(ctx, "Update mode 'auto' or 'manual' (manual steps on Enter, q quits): ",
		oneOf(utils.ModeAuto, utils.ModeManual))
	if err != nil {
		return cfg, err
	}
	cfg.Mode = strings.ToLower(mode)

	if cfg.Mode == utils.ModeAuto {
		_, err = c.Ask(ctx, "Timer length in ms: ", func(s string) error {
			nums, err := parseInts([]string{s})
			if err != nil {
				return err
			}
			if nums[0] < 0 {
				return errors.New("timer must not be negative")
			}
			cfg.Interval = utils.Duration(time.Duration(nums[0]) * time.Millisecond)
			return nil
		})
		if err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// PromptBoard reads placement commands until "done":
//
//	cell X Y
//	pattern NAME|NUMBER X Y
//	list
func PromptBoard(ctx context.Context, c *Console, b *model.BoardBuilder, renderer model.Renderer) error {
	c.Printf("Place cells with 'cell X Y', presets with 'pattern NAME X Y', 'list' shows presets, 'done' starts.\n")
	for {
		c.Printf("> ")
		line, err := c.ReadLine(ctx)
		if err != nil {
			return errors.Wrap(err, "[PromptBoard]")
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		placed, err := placeCommand(c, b, fields)
		if errors.Is(err, errDone) {
			return nil
		}
		if err != nil {
			c.Printf("%v\n", err)
			continue
		}
		if placed && renderer != nil {
			if err := renderer.Render(b); err != nil {
				return errors.Wrap(err, "[PromptBoard]")
			}
		}
	}
}

var errDone = errors.New("done")

// placeCommand runs one board command and reports whether it changed the board
func placeCommand(c *Console, b *model.BoardBuilder, fields []string) (bool, error) {
	switch strings.ToLower(fields[0]) {
	case "done":
		return false, errDone
	case "list":
		return false, model.RenderCatalog(c.out)
	case "cell":
		if len(fields) != 3 {
			return false, errors.New("usage: cell X Y")
		}
		xy, err := parseInts(fields[1:])
		if err != nil {
			return false, err
		}
		return true, b.Cell(xy[0], xy[1])
	case "pattern":
		if len(fields) != 4 {
			return false, errors.New("usage: pattern NAME X Y")
		}
		xy, err := parseInts(fields[2:])
		if err != nil {
			return false, err
		}
		return true, b.Pattern(fields[1], xy[0], xy[1])
	}
	return false, errors.Errorf("unknown command %q", fields[0])
}

// PromptRestart asks whether to play again
func PromptRestart(ctx context.Context, c *Console) (bool, error) {
	answer, err := c.Ask(ctx, "Restart? (y/n): ", oneOf("y", "n", "yes", "no"))
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}
