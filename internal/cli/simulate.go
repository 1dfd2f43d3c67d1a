package cli

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"skyscape/internal/particle"
	"skyscape/internal/scheduler"
	"skyscape/internal/sky"
	"skyscape/internal/surface"
)

// frameInterval is the simulated display refresh period.
const frameInterval = time.Second / 60

type simulateOptions struct {
	frames int
	width  int
	height int
	hour   int
	seed   int64
	hidden bool
}

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	so := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run frames headlessly and report what every layer drew",
		Long: `Run the sky against recording surfaces for a number of frames and print
particle counts, draw calls and scheduler state per layer.`,
		Example: `  skyscape simulate --frames 120
  skyscape simulate --device mobile --hour 22
  skyscape simulate --hidden --hidden-policy all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if so.frames < 0 || so.width <= 0 || so.height <= 0 {
				return fmt.Errorf("frames must be non-negative and the viewport positive")
			}
			if so.hour < -1 || so.hour > 23 {
				return fmt.Errorf("hour must be between -1 and 23 (-1 for now)")
			}
			base, err := opts.skyOptions(cmd.Context())
			if err != nil {
				return err
			}
			kinds, err := opts.cfg.LayerKinds()
			if err != nil {
				return err
			}
			return runSimulate(cmd.OutOrStdout(), base, kinds, so)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&so.frames, "frames", "n", 60, "number of frames to run after the initial paint")
	f.IntVar(&so.width, "width", 1920, "viewport width in pixels")
	f.IntVar(&so.height, "height", 1080, "viewport height in pixels")
	f.IntVar(&so.hour, "hour", -1, "local hour of day to simulate (-1 for now)")
	f.Int64Var(&so.seed, "seed", 1, "random seed")
	f.BoolVar(&so.hidden, "hidden", false, "simulate a hidden page")
	return cmd
}

func runSimulate(w io.Writer, opts sky.Options, kinds []particle.Kind, so simulateOptions) error {
	start := time.Now()
	if so.hour >= 0 {
		start = time.Date(start.Year(), start.Month(), start.Day(), so.hour, 0, 0, 0, time.Local)
	}
	now := start
	opts.Clock = func() time.Time { return now }
	opts.Rand = rand.New(rand.NewSource(so.seed))

	mgr := surface.NewManager()
	recs := map[particle.Kind]*surface.Recorder{}
	for _, k := range kinds {
		recs[k] = surface.NewRecorder(0, 0)
		mgr.Attach(k, recs[k])
	}

	s := sky.New(opts, mgr)
	s.Start(so.width, so.height)
	for i := 0; i < so.frames; i++ {
		now = now.Add(frameInterval)
		s.Frame(so.hidden)
	}

	printTitle(w, "Skyscape simulation")
	printKeyValue(w, "device", opts.Device.String())
	printKeyValue(w, "viewport", fmt.Sprintf("%dx%d", so.width, so.height))
	printKeyValue(w, "frames", strconv.FormatUint(s.Frames(), 10))
	printKeyValue(w, "time", start.Format("15:04"))
	printKeyValue(w, "motion", motion(opts.ReducedMotion))
	fmt.Fprintln(w)

	stats := map[particle.Kind]scheduler.TaskStats{}
	for _, st := range s.Stats() {
		stats[st.Layer] = st
	}
	widths := []int{12, 8, 10, 8, 8, 8}
	printRow(w, styleHeader, widths, "layer", "count", "state", "steps", "draws", "faults")
	for _, k := range kinds {
		st, ok := stats[k]
		state := "absent"
		if ok {
			state = st.State.String()
		}
		faults := styleOK.Render("0")
		if st.Faults > 0 {
			faults = styleFault.Render(strconv.FormatUint(st.Faults, 10))
		}
		printRow(w, styleValue, widths,
			k.String(),
			styleNumber.Render(strconv.Itoa(s.Store().Len(k))),
			state,
			strconv.FormatUint(st.Steps, 10),
			strconv.Itoa(recs[k].Draws()),
			faults,
		)
		if st.LastFault != "" {
			fmt.Fprintln(w, "    "+styleDim.Render("last fault: "+st.LastFault))
		}
	}
	return nil
}

func motion(reduced bool) string {
	if reduced {
		return "reduced"
	}
	return "full"
}
