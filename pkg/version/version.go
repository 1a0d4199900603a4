package version

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/mod/semver"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

// ReleaseURL é a API consultada por CheckLatestVersion.
var ReleaseURL = "https://api.github.com/repos/diillson/cloud-cost-ai-go/releases/latest"

// populateFromBuildInfo tenta preencher Version/Commit/BuildTime usando as informações
// embedadas pelo Go. Valores vindos de ldflags não são sobrescritos.
func populateFromBuildInfo() {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}

	get := func(key string) (string, bool) {
		for _, s := range bi.Settings {
			if s.Key == key {
				return s.Value, true
			}
		}
		return "", false
	}

	// vcs.revision: commit full SHA; usamos curto (7 chars)
	if Commit == "" {
		if rev, ok := get("vcs.revision"); ok && len(rev) >= 7 {
			Commit = rev[:7]
		}
	}

	if BuildTime == "" {
		if t, ok := get("vcs.time"); ok && t != "" {
			if ts, err := time.Parse(time.RFC3339, t); err == nil {
				BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
			}
		}
	}

	modified := false
	if m, ok := get("vcs.modified"); ok && strings.EqualFold(m, "true") {
		modified = true
	}

	// go install de um módulo versionado preenche Main.Version (ex: "v1.2.3")
	if v := bi.Main.Version; semver.IsValid(v) {
		Version = strings.TrimPrefix(v, "v")
		if modified {
			Version += "-dirty"
		}
	}
}

func init() {
	populateFromBuildInfo()
}

// IsNewer reports whether latest is a higher semantic version than current.
// Both may be given with or without the "v" prefix; invalid versions never compare as newer.
func IsNewer(current, latest string) bool {
	c, l := canonical(current), canonical(latest)
	if !semver.IsValid(c) || !semver.IsValid(l) {
		return false
	}
	return semver.Compare(l, c) > 0
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// CheckLatestVersion consulta a última release e avisa quando há versão mais nova.
// Retorna a versão encontrada e se ela é mais nova que a atual.
func CheckLatestVersion(currentVersion string) (string, bool) {
	// Versões dev não são verificadas
	if strings.HasSuffix(currentVersion, "-dev") {
		return "", false
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(ReleaseURL)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return "", false
	}

	latestVersion := strings.TrimPrefix(release.TagName, "v")
	if !IsNewer(currentVersion, latestVersion) {
		return latestVersion, false
	}

	pterm.Warning.Println(fmt.Sprintf("A new version of cloudcost is available: %s", latestVersion))
	pterm.Info.Println("Please update using: go install github.com/diillson/cloud-cost-ai-go/cmd/cloudcost@latest")
	return latestVersion, true
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	commit := Commit
	if commit == "" {
		commit = "development"
	}

	if commit == "development" && BuildTime == "" {
		return fmt.Sprintf("%s (development)", ver)
	}

	if BuildTime != "" {
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, commit, BuildTime)
	}

	return fmt.Sprintf("%s (commit: %s)", ver, commit)
}
