package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"calculator": { "clamp": false, "format": "json" }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, false, viper.GetBool("calculator.clamp"))
	assert.Equal(t, "json", viper.GetString("calculator.format"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./pdlogs", viper.GetString("logsDir"))
	assert.Equal(t, false, viper.GetBool("logToFile"))
	assert.Equal(t, true, viper.GetBool("calculator.clamp"))
	assert.Equal(t, "text", viper.GetString("calculator.format"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, "pdcalc", viper.GetString("otel.serviceName"))
	assert.Equal(t, "5s", viper.GetString("otel.batchTimeout"))
	assert.Equal(t, "", viper.GetString("otel.endpoint"))
	assert.Equal(t, true, viper.GetBool("otel.insecure"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	// defaults are still usable
	assert.Equal(t, "info", viper.GetString("logLevel"))
}

func TestGetters(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	viper.Set("testInt", 42)
	viper.Set("testBool", true)

	assert.Equal(t, "testValue", GetString("testKey"))
	assert.Equal(t, 42, GetInt("testInt"))
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetOTelConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"otel": {
			"enabled": true,
			"serviceName": "my-service",
			"batchTimeout": "30s",
			"endpoint": "localhost:4318",
			"insecure": false,
			"headers": "api-key=abc"
		}
	}`)
	require.NoError(t, Load(dir))

	oc := GetOTelConfig()
	assert.Equal(t, true, oc.Enabled)
	assert.Equal(t, "my-service", oc.ServiceName)
	assert.Equal(t, 30*time.Second, oc.BatchTimeout)
	assert.Equal(t, "localhost:4318", oc.Endpoint)
	assert.Equal(t, false, oc.Insecure)
	assert.Equal(t, "api-key=abc", oc.Headers)
}

func TestGetOTelConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()

	oc := GetOTelConfig()
	assert.Equal(t, 5*time.Second, oc.BatchTimeout)
	assert.Equal(t, "pdcalc", oc.ServiceName)
}

func TestGetGraylogConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{"graylog": {"enabled": true, "address": "gl:12201"}}`)))

	assert.Equal(t, GraylogConfig{Enabled: true, Address: "gl:12201"}, GetGraylogConfig())
}

func TestGetCalculatorConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()

	assert.Equal(t, CalculatorConfig{Clamp: true, Format: "text"}, GetCalculatorConfig())
}

func TestBindFlags(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{"calculator": {"format": "json"}}`)))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("format", "text", "")
	fs.String("log-level", "info", "")
	require.NoError(t, BindFlags(fs, map[string]string{
		"format":    "calculator.format",
		"log-level": "logLevel",
	}))

	// unset flags leave the file value in place
	assert.Equal(t, "json", GetCalculatorConfig().Format)

	require.NoError(t, fs.Parse([]string{"--format", "text"}))
	assert.Equal(t, "text", GetCalculatorConfig().Format)
}

func TestBindFlags_UnknownFlag(t *testing.T) {
	t.Cleanup(viper.Reset)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	err := BindFlags(fs, map[string]string{"missing": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}
