package lua

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/trimlight/internal/lua/modules"
	"github.com/dokzlo13/trimlight/internal/trimlight"
)

// Runtime runs automation scripts against one Trimlight account.
// A Runtime is not safe for concurrent use; scripts run one at a time.
type Runtime struct {
	L      *lua.LState
	client *trimlight.Client

	trimlightModule *modules.TrimlightModule
}

// NewRuntime creates a Lua state with the log, utils and trimlight modules
// preloaded. deviceID may be empty to use the first device of the account.
func NewRuntime(client *trimlight.Client, deviceID string) *Runtime {
	r := &Runtime{
		L:      lua.NewState(),
		client: client,
	}
	r.registerModules(deviceID)
	return r
}

// Close closes the Lua state
func (r *Runtime) Close() {
	r.L.Close()
}

// registerModules registers all Lua modules
func (r *Runtime) registerModules(deviceID string) {
	r.L.PreloadModule("log", modules.NewLogModule().Loader)
	r.L.PreloadModule("utils", modules.NewUtilsModule().Loader)

	r.trimlightModule = modules.NewTrimlightModule(r.client, deviceID)
	r.L.PreloadModule("trimlight", r.trimlightModule.Loader)
}

// Run executes the script at path and returns when it finishes or ctx is done.
func (r *Runtime) Run(ctx context.Context, path string) (err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return fmt.Errorf("failed to open Lua script: %w", statErr)
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua script panicked: %v", rec)
		}
	}()

	// Modules read the context through L.Context()
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	log.Info().Str("path", path).Msg("Running Lua script")

	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("failed to execute Lua script: %w", err)
	}

	log.Info().Str("path", path).Msg("Lua script finished")
	return nil
}

// RunString executes source as a script chunk.
func (r *Runtime) RunString(ctx context.Context, source string) error {
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	if err := r.L.DoString(source); err != nil {
		return fmt.Errorf("failed to execute Lua script: %w", err)
	}
	return nil
}
