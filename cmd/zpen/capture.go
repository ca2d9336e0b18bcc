package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/example/zpen/internal/capture"
)

var (
	screenSource   capture.Source = capture.ScreenSource{}
	listMonitorsFn                = capture.ListMonitors
)

// captureCmd saves a region of the live screen without opening a window.
type captureCmd struct {
	rect        string
	toClipboard bool
	a, b        image.Point
	output      outputOptions
	*root
	fs *flag.FlagSet
}

func (c *captureCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *captureCmd) Template() string {
	return "capture.txt"
}

func (c *captureCmd) Program() string {
	return c.root.commandName("capture")
}

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	c := &captureCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.rect, "rect", "", "capture rectangle x0,y0,x1,y1")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "also copy the capture to the clipboard")
	c.output.register(fs, r.settings())
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.rect == "" && fs.NArg() > 0 {
		c.rect = strings.Join(fs.Args(), "")
	} else if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if strings.TrimSpace(c.rect) == "" {
		return nil, &UsageError{of: c}
	}
	a, b, err := parseCorners(c.rect)
	if err != nil {
		return nil, err
	}
	c.a, c.b = a, b
	return c, nil
}

func (c *captureCmd) Run() error {
	a, b := c.a, c.b
	if sel := c.root.monitorSelector(); sel != "" {
		monitors, err := listMonitorsFn()
		if err != nil {
			return fmt.Errorf("failed to list monitors: %w", err)
		}
		mon, err := capture.FindMonitor(monitors, sel)
		if err != nil {
			return err
		}
		a, b = a.Add(mon.Rect.Min), b.Add(mon.Rect.Min)
	}
	pipeline, sink, err := c.output.pipeline(screenSource, c.root)
	if err != nil {
		return err
	}
	dest := capture.ToFile
	if c.toClipboard {
		dest = capture.ToFileAndClipboard
	}
	path, err := pipeline.Capture(a, b, dest)
	if err != nil {
		return fmt.Errorf("failed to capture region: %w", err)
	}
	fmt.Fprintln(os.Stdout, path)
	sink.hold(c.output.hold)
	return nil
}

// parseCorners reads two opposite corners written as x0,y0,x1,y1. The corners
// may be given in any order.
func parseCorners(val string) (image.Point, image.Point, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 4 {
		return image.Point{}, image.Point{}, fmt.Errorf("invalid region %q", val)
	}
	nums := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Point{}, image.Point{}, fmt.Errorf("invalid region %q", val)
		}
		nums[i] = v
	}
	return image.Pt(nums[0], nums[1]), image.Pt(nums[2], nums[3]), nil
}
