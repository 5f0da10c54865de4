package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse"
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const tickRate = 50

var (
	configPath string
	debug      bool
	statsAddr  string
	sentryDSN  string

	scenarioName string
	ticks        int
)

var rootCmd = &cobra.Command{
	Use:          "climbsim",
	Short:        "Run the climbing character headless",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a scenario and log every climb and animation state change",
	RunE:  runScenario,
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults <path>",
	Short: "Write the default settings to a .toml or .yaml file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := settings.SaveDefault(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "default settings written to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file, .toml or .yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log decisions and probes")

	runCmd.Flags().StringVar(&scenarioName, "scenario", "wall", fmt.Sprintf("scenario to play, one of %v", scenarioNames()))
	runCmd.Flags().IntVar(&ticks, "ticks", 400, "fixed ticks to run")
	runCmd.Flags().StringVar(&statsAddr, "statsview", "", "serve the runtime stats dashboard on this address, e.g. localhost:18066")
	runCmd.Flags().StringVar(&sentryDSN, "sentry-dsn", "", "report recovered panics to Sentry")

	rootCmd.AddCommand(runCmd, defaultsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, _ []string) error {
	sc, err := lookupScenario(scenarioName)
	if err != nil {
		return err
	}
	s := settings.DefaultSettings()
	if configPath != "" {
		if s, err = settings.Load(configPath); err != nil {
			return err
		}
	}
	s.Debug = s.Debug || debug

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	log.SetOutput(cmd.OutOrStdout())
	log.Level = logrus.InfoLevel
	if s.Debug {
		log.Level = logrus.DebugLevel
	}

	if sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN}); err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		defer sentry.Flush(time.Second * 2)
	}
	if statsAddr != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(statsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Infof("statsview serving on http://%s/debug/statsview", statsAddr)
	}

	c, err := traverse.New(s, sc.scene(), game.PoseAt(mgl32.Vec3{}), log)
	if err != nil {
		return err
	}
	c.Subscribe(anim.ListenerFunc(func(info anim.StateInfo, phase anim.Phase) {
		if phase == anim.PhaseEnter {
			log.Infof("anim: enter %s", info.ID)
		}
	}))

	log.Infof("scenario %s: %s", scenarioName, sc.description)
	script := sc.script()
	state := c.ClimbState()
	dt := float32(1) / tickRate
	for i := 0; i < ticks; i++ {
		script(c, i)
		c.FixedTick(dt)
		c.Frame(dt)
		if next := c.ClimbState(); next != state {
			log.Infof("tick %d: climb %s -> %s at %v", i, state, next, c.Pose().Position)
			state = next
		}
	}
	log.Infof("done after %d ticks: climb=%s air=%s anim=%s position=%v", ticks, c.ClimbState(), c.MovementState(), c.AnimationState().ID, c.Pose().Position)
	return nil
}
