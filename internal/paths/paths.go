// Package paths resolves on-disk locations for the global vault,
// per-project vaults, the session store, and the agent socket, and
// implements the global/project scope-selection rules.
package paths

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

const appName = "Obscura"

// ConfigDir returns <os-appropriate config dir>/Obscura, following
// os.UserConfigDir's XDG/Application Support/Roaming AppData conventions.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", vaulterr.ErrFilePermission
	}
	return filepath.Join(base, appName), nil
}

// GlobalVaultPath returns <cfg>/vault.enc.
func GlobalVaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vault.enc"), nil
}

// ProjectsDir returns <cfg>/projects.
func ProjectsDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "projects"), nil
}

// projectHash returns the hex BLAKE3 digest of the canonicalized absolute
// project path's UTF-8 bytes, so directory names never appear in the config
// tree.
func projectHash(projectPath string) (string, error) {
	canonical, err := filepath.Abs(projectPath)
	if err != nil {
		return "", vaulterr.ErrFilePermission
	}
	canonical, err = filepath.EvalSymlinks(canonical)
	if err != nil {
		return "", vaulterr.ErrFilePermission
	}
	sum := blake3.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:]), nil
}

// ProjectDir returns <cfg>/projects/<hex(blake3(canonical_path))>.
func ProjectDir(projectPath string) (string, error) {
	hash, err := projectHash(projectPath)
	if err != nil {
		return "", err
	}
	projectsDir, err := ProjectsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(projectsDir, hash), nil
}

// ProjectVaultPath returns <cfg>/projects/<hash>/vault.enc for projectPath.
func ProjectVaultPath(projectPath string) (string, error) {
	dir, err := ProjectDir(projectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vault.enc"), nil
}

// ProjectMetaPath returns <cfg>/projects/<hash>/meta.json for projectPath.
func ProjectMetaPath(projectPath string) (string, error) {
	dir, err := ProjectDir(projectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "meta.json"), nil
}

// ProjectMeta is the metadata document written alongside every project
// vault: the canonical directory it belongs to, and when it was first and
// most recently touched by an `init --project`.
type ProjectMeta struct {
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
}

// ReadProjectMeta reads and decodes meta.json for projectPath.
func ReadProjectMeta(projectPath string) (ProjectMeta, error) {
	metaPath, err := ProjectMetaPath(projectPath)
	if err != nil {
		return ProjectMeta{}, err
	}
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return ProjectMeta{}, vaulterr.ErrFilePermission
	}
	var meta ProjectMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return ProjectMeta{}, vaulterr.ErrFilePermission
	}
	return meta, nil
}

// WriteProjectMeta creates or refreshes meta.json for projectPath, keeping
// the original CreatedAt if a meta document already exists and always
// bumping LastUsed to now.
func WriteProjectMeta(projectPath string) error {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return vaulterr.ErrFilePermission
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return vaulterr.ErrFilePermission
	}

	now := time.Now()
	meta := ProjectMeta{Path: abs, CreatedAt: now, LastUsed: now}
	if existing, err := ReadProjectMeta(projectPath); err == nil {
		meta.CreatedAt = existing.CreatedAt
	}

	metaPath, err := ProjectMetaPath(projectPath)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return vaulterr.ErrFilePermission
	}
	if err := os.WriteFile(metaPath, data, 0o600); err != nil {
		return vaulterr.ErrFilePermission
	}
	return nil
}

// SessionFilePath returns <cfg>/session.enc, the encrypted file-backed
// session store's location.
func SessionFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.enc"), nil
}

// AgentSocketPath returns <cfg>/agent.sock.
func AgentSocketPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agent.sock"), nil
}

// EnsureConfigDir creates the config directory tree if absent.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return vaulterr.ErrFilePermission
	}
	return nil
}

// EnsureProjectDir creates the project's vault directory tree if absent.
func EnsureProjectDir(projectPath string) error {
	dir, err := ProjectDir(projectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return vaulterr.ErrFilePermission
	}
	return nil
}

// Scope identifies which vault a command targets.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeProject
)

func (s Scope) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "project"
}

// ScopeInfo is the resolved target of a command.
type ScopeInfo struct {
	Scope       Scope
	VaultPath   string
	ProjectPath string // only set for ScopeProject
}

// ResolveScope selects which vault a command targets: forcing both global
// and project is an error; a forced flag selects that scope directly;
// otherwise auto-resolve by checking whether a project vault exists for the
// current directory.
func ResolveScope(forceGlobal, forceProject bool) (ScopeInfo, error) {
	if forceGlobal && forceProject {
		return ScopeInfo{}, vaulterr.ErrBothScopesForced
	}

	if forceGlobal {
		path, err := GlobalVaultPath()
		if err != nil {
			return ScopeInfo{}, err
		}
		return ScopeInfo{Scope: ScopeGlobal, VaultPath: path}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ScopeInfo{}, vaulterr.ErrFilePermission
	}

	if forceProject {
		path, err := ProjectVaultPath(cwd)
		if err != nil {
			return ScopeInfo{}, err
		}
		return ScopeInfo{Scope: ScopeProject, VaultPath: path, ProjectPath: cwd}, nil
	}

	projectPath, err := ProjectVaultPath(cwd)
	if err != nil {
		return ScopeInfo{}, err
	}
	if _, err := os.Stat(projectPath); err == nil {
		return ScopeInfo{Scope: ScopeProject, VaultPath: projectPath, ProjectPath: cwd}, nil
	}

	globalPath, err := GlobalVaultPath()
	if err != nil {
		return ScopeInfo{}, err
	}
	return ScopeInfo{Scope: ScopeGlobal, VaultPath: globalPath}, nil
}
