package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gitelweb/ossync/internal/shared"
	tu "github.com/gitelweb/ossync/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
		})

		t.Run("with nil dependencies uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("pretty prints", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"targets": 3}, true); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if !strings.Contains(output.String(), "\"targets\": 3") {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("propagates write errors", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]int{}, false); err == nil {
				t.Error("expected write error")
			}
		})
	})
}

// testApp builds the CLI surface around a runner writing to a buffer.
func testApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:     "ossync",
		Commands: runner.register(),
	}
}

// writeTestConfig writes a config file pointing at a temp database and,
// optionally, a scripted API server.
func writeTestConfig(t *testing.T, serverURL string) string {
	t.Helper()

	dir := t.TempDir()
	creds := ""
	if serverURL != "" {
		creds = fmt.Sprintf(
			"client_id = \"id\"\nclient_secret = \"secret\"\ntoken_url = %q\nbase_url = %q\n",
			serverURL+"/oauth/token", serverURL,
		)
	}

	content := fmt.Sprintf("[credentials]\n%s\n[database]\npath = %q\n\n[sync]\nworkers = 4\n",
		creds, filepath.Join(dir, "test.db"))

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// workOrderServer serves a token grant plus a single known folio; every
// other folio is a 404.
func workOrderServer(t *testing.T, folio string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","token_type":"bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/work_orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/work_orders/"+folio {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"data":[{
			"wo_folio": %q,
			"id_work_orders_tasks": 77,
			"id_status_work_order": 1,
			"parent_description": "GERDAU SAPUCAIA",
			"personnel_description": "Augusto Brum",
			"tasks_log_task_type_main": "Corretiva"
		}]}`, folio)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSetupCommand(t *testing.T) {
	configPath := writeTestConfig(t, "")
	runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

	err := testApp(runner).Run(context.Background(), []string{"ossync", "setup", "--config", configPath})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	dbPath := filepath.Join(filepath.Dir(configPath), "test.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected database file at %s: %v", dbPath, err)
	}
}

func TestSyncFullCommand(t *testing.T) {
	srv := workOrderServer(t, "OS7")
	configPath := writeTestConfig(t, srv.URL)

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output, HTTPClient: srv.Client()})

	err := testApp(runner).Run(context.Background(),
		[]string{"ossync", "sync", "full", "--config", configPath, "--json"})
	if err != nil {
		t.Fatalf("sync full failed: %v", err)
	}

	got := output.String()
	for _, want := range []string{`"strategy": "full_scan"`, `"targets": 100`, `"work_orders_created": 1`, `"tasks_created": 1`} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %s:\n%s", want, got)
		}
	}
}

func TestSyncFlagOverridesAreValidated(t *testing.T) {
	configPath := writeTestConfig(t, "")
	runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

	err := testApp(runner).Run(context.Background(),
		[]string{"ossync", "sync", "full", "--config", configPath, "--workers=-1"})
	if !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("err = %v, want ErrInvalidFlag", err)
	}
}

func TestSyncFullCommandRequiresCredentials(t *testing.T) {
	configPath := writeTestConfig(t, "")
	runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

	err := testApp(runner).Run(context.Background(),
		[]string{"ossync", "sync", "full", "--config", configPath})
	if err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestExportCommand(t *testing.T) {
	configPath := writeTestConfig(t, "")
	out := filepath.Join(filepath.Dir(configPath), "report")
	runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

	err := testApp(runner).Run(context.Background(),
		[]string{"ossync", "export", "--config", configPath, "--out", out})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	for _, suffix := range []string{"_work_orders.csv", "_tasks.csv", "_summary.txt"} {
		if _, err := os.Stat(out + suffix); err != nil {
			t.Errorf("expected %s%s: %v", out, suffix, err)
		}
	}
}

func TestReclassifyCommandIsOffline(t *testing.T) {
	configPath := writeTestConfig(t, "")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output})

	err := testApp(runner).Run(context.Background(),
		[]string{"ossync", "reclassify", "--config", configPath})
	if err != nil {
		t.Fatalf("reclassify failed: %v", err)
	}
	if !strings.Contains(output.String(), "reclassify") {
		t.Errorf("unexpected summary output: %q", output.String())
	}
}
