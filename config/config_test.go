package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	req := require.New(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	req.NoError(err)
	req.NoError(cfg.Validate())
	req.Equal(8080, cfg.Port)
	req.Equal("info", cfg.LogLevel)
	req.Equal("release", cfg.GinMode)
	req.Equal("chat_session", cfg.SessionCookie)
	req.Equal(30*time.Minute, cfg.SessionIdleTimeout)
	req.Equal(time.Minute, cfg.SessionSweepInterval)
	req.Equal(3, cfg.TutorialStep)
	req.Equal(":8080", cfg.Address())
}

func Test_Load_From_Environment(t *testing.T) {
	req := require.New(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("TUTORIAL_STEP", "1")
	t.Setenv("SESSION_IDLE_TIMEOUT", "90s")

	cfg, err := Load("")
	req.NoError(err)
	req.Equal("127.0.0.1:9090", cfg.Address())
	req.Equal(1, cfg.TutorialStep)
	req.Equal(90*time.Second, cfg.SessionIdleTimeout)
}

func Test_Load_From_Env_File(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), ".env")
	req.NoError(os.WriteFile(path, []byte("TUTORIAL_STEP=2\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("TUTORIAL_STEP")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(path)
	req.NoError(err)
	req.Equal(2, cfg.TutorialStep)
	req.Equal("debug", cfg.LogLevel)
}

func Test_Validate_Rejects_Out_Of_Range_Step(t *testing.T) {
	req := require.New(t)
	t.Setenv("TUTORIAL_STEP", "7")
	cfg, err := Load("")
	req.NoError(err)
	req.Equal(7, cfg.TutorialStep)
	req.ErrorContains(cfg.Validate(), "invalid config")
}

func Test_Validate_Rejects_Unknown_Log_Level(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.LogLevel = "verbose"
	require.Error(t, cfg.Validate())
}
