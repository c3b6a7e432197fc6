package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-kernel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/config"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/cpu"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/hw"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/irq"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/kernel"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/keyboard"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/mailbox"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/render"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/scancode"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/storage"
	"github.com/rocketscienceinc/tictactoe-kernel/internal/terminal"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var mirror *storage.RedisStorage
	if conf.Redis.Enabled {
		redisAddrString, err := redisAddr(conf.Redis)
		if err != nil {
			return err
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		log.Info("Mirroring screen to redis", "addr", redisAddrString, "channel", conf.Redis.Channel)
		mirror = redisStorage
	}

	translator := scancode.NewTranslator(&scancode.USQwerty)

	source, display, closeTerminal, err := openTerminal(conf.Display, translator)
	if err != nil {
		return err
	}
	defer closeTerminal()

	if mirror != nil {
		display = render.Multi(display, render.NewRedisMirror(mirror.Connection, conf.Redis.Channel))
	}

	return Run(ctx, logger, translator, source, display)
}

// redisAddr - address of the mirror server; both host and port must be set.
func redisAddr(conf config.Redis) (string, error) {
	if conf.Host == "" || conf.Port == "" {
		return "", apperror.ErrAddrNotFound
	}

	return conf.GetRedisAddr(), nil
}

func openTerminal(mode string, translator *scancode.Translator) (keyboard.Source, render.Display, func(), error) {
	switch mode {
	case config.DisplayTcell:
		screen, err := terminal.New(translator)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not open terminal screen: %w", err)
		}

		return screen, screen, screen.Close, nil
	case config.DisplayTTY:
		tty, err := keyboard.OpenTTY(translator)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not open tty: %w", err)
		}

		return tty, render.NewTextDisplay(tty.Output()), func() { _ = tty.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDisplay, mode)
	}
}

// Run - boots the emulated machine and runs the interrupt context, the host keyboard and the
// main loop until ctx ends, the user quits or a component fails. The translator decodes scancodes
// in the keyboard interrupt and must be the one the source encodes with.
func Run(
	ctx context.Context,
	logger *slog.Logger,
	translator *scancode.Translator,
	source keyboard.Source,
	display render.Display,
) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	machine := hw.NewMachine()
	hw.InitPIC(machine)

	inbox := mailbox.New()
	core := cpu.New()

	dispatcher := irq.NewDispatcher(logger, machine, core)
	dispatcher.Register(hw.KeyboardVector, irq.NewKeyboardHandler(machine, translator, inbox))

	hw.EnableKeyboard(machine)

	mainLoop := kernel.New(logger, inbox, core, render.NewDriver(display))

	var wg sync.WaitGroup
	errCh := make(chan error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := dispatcher.Run(ctx); err != nil {
			errCh <- fmt.Errorf("interrupt dispatcher error: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		if err := source.Run(ctx, machine.PushScancode); err != nil {
			if errors.Is(err, keyboard.ErrQuit) {
				log.Info("Quit requested")
				cancel()
				return
			}
			errCh <- fmt.Errorf("keyboard error: %w", err)
			return
		}
		log.Info("Keyboard input ended")
	}()

	go func() {
		defer wg.Done()
		if err := mainLoop.Run(ctx); err != nil {
			errCh <- fmt.Errorf("kernel error: %w", err)
		}
	}()

	var err error
	select {
	case err = <-errCh:
		log.Error("Shutting down", "error", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	cancel()
	wg.Wait()

	log.Debug("Machine stopped", "eoi_count", machine.EOICount(), "irq_in_service", machine.InService())

	return err
}
