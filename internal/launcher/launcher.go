package launcher

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/mmr-tortoise/useenv/internal/envfile"
	"github.com/mmr-tortoise/useenv/internal/model"
)

// Launcher spawns the child process. The function fields default to the
// os and os/exec implementations and exist so tests can substitute them.
type Launcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Environ returns the parent's environment.
	Environ func() []string

	// LookPath resolves the program name. It searches the parent's PATH,
	// not the PATH being handed to the child.
	LookPath func(file string) (string, error)

	// Files loads variables named by --env-file.
	Files *envfile.Loader

	Logger zerolog.Logger
}

// New creates a Launcher wired to the current process.
func New(logger zerolog.Logger) *Launcher {
	return &Launcher{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Environ:  os.Environ,
		LookPath: exec.LookPath,
		Files:    envfile.NewLoader(),
		Logger:   logger,
	}
}

// Environment loads env files and returns the child's environment block.
func (l *Launcher) Environment(mod model.EnvironmentModification) ([]string, error) {
	if mod.ClearEnv {
		l.Logger.Debug().Msg("Clearing all environment variables not explicitly set")
	}
	for _, name := range mod.UnsetVars {
		l.Logger.Debug().Str("name", name).Msg("Unsetting variable")
	}

	fileVars, err := l.Files.LoadAll(mod.EnvFiles)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitEnvFileError, "cannot load environment", err)
	}
	if len(mod.EnvFiles) > 0 {
		l.Logger.Debug().Strs("paths", mod.EnvFiles).Int("count", len(fileVars)).Msg("Loaded env files")
	}

	for _, a := range mod.SetVars {
		l.Logger.Debug().Str("name", a.Name).Str("value", a.Value).Msg("Setting variable")
	}

	return BuildEnviron(l.Environ(), mod, fileVars), nil
}

// Run starts inv.Command with the modified environment and waits for it.
//
// A child that exits normally yields its own exit code and a nil error,
// whatever the code. A child that ends without an exit code (killed by a
// signal) yields model.ExitChildAbnormal. Failing to start the child
// returns a *model.CLIError: ExitCommandNotFound when the program cannot
// be found, ExitCannotInvoke otherwise.
func (l *Launcher) Run(inv *model.Invocation) (int, error) {
	if len(inv.Command) == 0 {
		return int(model.ExitUsage), model.NewCLIError(model.ExitUsage, "no command provided")
	}

	env, err := l.Environment(inv.Env)
	if err != nil {
		return int(model.ExitEnvFileError), err
	}

	program := inv.Command.Program()
	path, err := l.LookPath(program)
	if err != nil {
		return startFailure(program, err)
	}

	// #nosec G204 -- running a user-chosen command is the purpose of useenv
	cmd := exec.Command(path, inv.Command.Args()...)
	cmd.Args[0] = program
	cmd.Env = env
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	l.Logger.Debug().Str("path", path).Strs("args", inv.Command.Args()).Msg("Starting command")

	if err := cmd.Start(); err != nil {
		return startFailure(program, err)
	}

	err = cmd.Wait()
	if err == nil {
		return int(model.ExitSuccess), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return int(model.ExitGeneralError), model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed waiting for %s", program), err)
	}

	code := exitErr.ExitCode()
	if code < 0 {
		l.Logger.Warn().Str("command", program).Str("state", exitErr.String()).
			Int("exitCode", int(model.ExitChildAbnormal)).
			Msg("Command terminated without an exit code")
		return int(model.ExitChildAbnormal), nil
	}
	return code, nil
}

func startFailure(program string, err error) (int, error) {
	code := model.ExitCannotInvoke
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		code = model.ExitCommandNotFound
	}
	return int(code), model.WrapCLIError(code, fmt.Sprintf("cannot run %s", program), err)
}
