package cmd

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/epoled/epoled/epomaker"
	"github.com/epoled/epoled/internal/log"
	"github.com/epoled/epoled/protocol"
)

// Daemon keeps the screen's clock, CPU and temperature readouts updated
// until interrupted.
type Daemon struct {
	TempKey  string        `arg:"" optional:"" help:"Sensor label to report as the temperature readout (see 'sensors' output)"`
	Interval time.Duration `help:"Refresh interval" default:"2s" env:"EPOLED_DAEMON_INTERVAL"`
	Test     bool          `help:"Send random values instead of sensor readings"`
	DryRun   bool          `help:"Log the packets without touching the device" env:"EPOLED_DRY_RUN"`

	Install   bool `help:"Install the daemon as a systemd service and exit" xor:"service"`
	Uninstall bool `help:"Remove the systemd service and exit" xor:"service"`
}

// Run is called by kong when the daemon command is executed.
func (d *Daemon) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	if d.Install {
		return installDaemon(logger, d.TempKey)
	}
	if d.Uninstall {
		return uninstallDaemon(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := openSession(logger, rawLogger, d.DryRun)
	if err != nil {
		return err
	}
	defer session.Close()

	// The clock only needs setting once; the firmware keeps it ticking.
	if err := session.SendCommand(protocol.ClockCommand(time.Now())); err != nil {
		return err
	}
	logger.Info("daemon started", "interval", d.Interval, "tempKey", d.TempKey)

	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("daemon stopping")
			return nil
		case <-ticker.C:
			if err := d.tick(ctx, session, logger); err != nil {
				return err
			}
		}
	}
}

func (d *Daemon) tick(ctx context.Context, session *epomaker.Session, logger *slog.Logger) error {
	pct, err := d.cpuPercent(ctx)
	if err != nil {
		logger.Warn("cpu usage unavailable", "error", err)
	} else {
		if err := session.SendCommand(protocol.CPUCommand(pct)); err != nil {
			return err
		}
	}

	if d.TempKey == "" && !d.Test {
		return nil
	}
	degrees, ok := d.temperature(logger)
	if !ok {
		return nil
	}
	return session.SendCommand(protocol.TempCommand(degrees))
}

func (d *Daemon) cpuPercent(ctx context.Context) (int, error) {
	if d.Test {
		return rand.IntN(101), nil
	}
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil || len(pcts) == 0 {
		return 0, err
	}
	return int(pcts[0] + 0.5), nil
}

func (d *Daemon) temperature(logger *slog.Logger) (int, bool) {
	if d.Test {
		return rand.IntN(100), true
	}
	stats, err := sensors.SensorsTemperatures()
	if err != nil {
		logger.Warn("temperature sensors unavailable", "error", err)
		return 0, false
	}
	for _, st := range stats {
		if st.SensorKey == d.TempKey {
			return int(st.Temperature + 0.5), true
		}
	}
	logger.Warn("temperature sensor not found", "tempKey", d.TempKey)
	return 0, false
}
