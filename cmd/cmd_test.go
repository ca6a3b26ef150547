package cmd

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/bgallie/enigma/engine"
	"github.com/bgallie/enigma/filters/groups"
	"github.com/bgallie/enigma/filters/letters"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleSettings = engine.Settings{
	Reflector:   "UKW-C",
	Rotors:      "II IV I",
	RingSetting: "6 17 26",
	Plugboard:   "AC LS BQ WN MY UV FJ PZ TR OK",
	Indicator:   "HAG",
}

const plainText = `Alles in Ordnung.  Keine besonderen Ereignisse auf dem
Marsch nach Norden; Treibstoff fuer drei Tage vorhanden.`

func newMachine(t *testing.T, iCnt int64) *engine.Machine {
	t.Helper()
	m, err := engine.Configure(exampleSettings)
	require.NoError(t, err)
	m.SetIndex(big.NewInt(iCnt))
	return m
}

func encipherText(t *testing.T, iCnt int64, opts armorOptions) string {
	t.Helper()
	m := newMachine(t, iCnt)
	var out bytes.Buffer
	start := m.Index()
	cipherRdr := m.Reader(letters.ToLetters(strings.NewReader(plainText)))
	require.NoError(t, encodeCiphertext(&out, cipherRdr, start, opts))
	return out.String()
}

func TestEncodePlainGroups(t *testing.T) {
	m := newMachine(t, 0)
	var out bytes.Buffer
	start := m.Index()
	require.NoError(t, encodeCiphertext(&out, m.Reader(strings.NewReader("AAAAAAAAAA")), start,
		armorOptions{size: 5, perLine: 6}))
	assert.Equal(t, "MYIJE XBYWP\n", out.String())
}

func TestArmorRoundTrip(t *testing.T) {
	want := groups.Format(string(letters.Filter([]byte(plainText))), 5, 6)
	tests := []struct {
		name   string
		opts   armorOptions
		prefix string
	}{
		{"pem", armorOptions{usePem: true, fileName: "orders.txt"}, "-----BEGIN "},
		{"pem compressed", armorOptions{usePem: true, compression: true}, "-----BEGIN "},
		{"ascii85", armorOptions{useASCII85: true}, "+ENIGMA|1234|false\n"},
		{"ascii85 compressed", armorOptions{useASCII85: true, compression: true}, "+ENIGMA|1234|true\n"},
		{"plain", armorOptions{size: 5, perLine: 6}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cipher := encipherText(t, 1234, tt.opts)
			assert.True(t, strings.HasPrefix(cipher, tt.prefix), cipher)

			// The receiver does not know the count unless the armor carries it.
			m := newMachine(t, 0)
			iCnt := new(big.Int)
			if tt.prefix == "" {
				iCnt.SetInt64(1234)
			}
			var out bytes.Buffer
			require.NoError(t, decipherStream(m, strings.NewReader(cipher), &out, iCnt, 5, 6))
			assert.Equal(t, want, out.String())
			assert.Equal(t, int64(1234+len(letters.Filter([]byte(plainText)))), m.Index().Int64())
		})
	}
}

func TestDecipherErrors(t *testing.T) {
	for _, in := range []string{
		"+ENIGMA|12x|false\nAAAA\n",
		"+ENIGMA|12|false|extra\nAAAA\n",
		"+ENIGMA|-3|false\nAAAA\n",
		"+ENIGMA|12|false",
	} {
		var out bytes.Buffer
		assert.Error(t, decipherStream(newMachine(t, 0), strings.NewReader(in), &out, new(big.Int), 5, 6), in)
	}
}

func TestDecipherEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, decipherStream(newMachine(t, 0), strings.NewReader(""), &out, new(big.Int), 5, 6))
	assert.Empty(t, out.String())
}

func TestInitialCount(t *testing.T) {
	m := newMachine(t, 0)
	half := new(big.Int).Div(m.MaximalStates(), big.NewInt(2))

	tests := []struct {
		in   string
		want *big.Int
	}{
		{"", big.NewInt(0)},
		{"0", big.NewInt(0)},
		{"123456789012345678901234567890", func() *big.Int {
			n, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
			return n
		}()},
		{"1/2", half},
		{"2/2", m.MaximalStates()},
	}
	for _, tt := range tests {
		got, err := initialCount(m, tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want.String(), got.String(), tt.in)
	}

	for _, in := range []string{"abc", "1/0", "x/2", "1/y", "1/2/3", "-5", "-1/2"} {
		_, err := initialCount(m, in)
		assert.Error(t, err, in)
	}
}

func TestCounterStore(t *testing.T) {
	saved := appFs
	defer func() { appFs = saved }()
	appFs = afero.NewMemMapFs()
	require.NoError(t, appFs.MkdirAll("/home/op", 0755))
	fileName := "/home/op/.enigma.counters.yaml"

	store, err := openCounterStore(fileName)
	require.NoError(t, err)
	key := newMachine(t, 0).CounterKey()
	_, ok := store.Get(key)
	assert.False(t, ok)

	want, _ := new(big.Int).SetString("98765432109876543210", 10)
	store.Set(key, want)
	require.NoError(t, store.Save())

	store, err = openCounterStore(fileName)
	require.NoError(t, err)
	got, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, want.String(), got.String())

	require.NoError(t, afero.WriteFile(appFs, fileName, []byte("counters:\n  "+key+": nonsense\n"), 0600))
	store, err = openCounterStore(fileName)
	require.NoError(t, err)
	_, ok = store.Get(key)
	assert.False(t, ok)
}

func TestSettingString(t *testing.T) {
	viper.Set("test-rotors", []interface{}{"II", "IV", "I"})
	viper.Set("test-indicator", "HAG")
	viper.Set("test-ring", []interface{}{6, 17, 26})

	s, err := settingString("test-rotors")
	require.NoError(t, err)
	assert.Equal(t, "II IV I", s)

	s, err = settingString("test-indicator")
	require.NoError(t, err)
	assert.Equal(t, "HAG", s)

	s, err = settingString("test-ring")
	require.NoError(t, err)
	assert.Equal(t, "6 17 26", s)
}

func TestNormalizeFlagName(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for in, want := range map[string]string{
		"umkehrwalze":         "reflector",
		"walzenlage":          "rotors",
		"ringstellung":        "ring-setting",
		"steckerverbindungen": "plugboard-setting",
		"grundstellung":       "indicator-setting",
		"hilfe":               "help",
		"rotors":              "rotors",
	} {
		assert.Equal(t, pflag.NormalizedName(want), normalizeFlagName(fs, in))
	}
}

func TestWriteCatalog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeCatalog(&out))
	assert.Contains(t, out.String(), "  I     EKMFLGDQVZNTOWYHXUSPAIBRCJ  notch Q\n")
	assert.Contains(t, out.String(), "  VIII  FKQHTLXOCBJSPDZRAMEWNIUYGV  notch Z,M\n")
	assert.Contains(t, out.String(), "  UKW-B YRUHQSLDPXNGOKMIEBFZCWVJAT\n")
}

func TestEncipherCommand(t *testing.T) {
	saved := appFs
	defer func() { appFs = saved }()
	appFs = afero.NewMemMapFs()

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("aaaaa aaaaa"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"encipher",
		"--umkehrwalze", "UKW-C",
		"-w", "II IV I",
		"-r", "6 17 26",
		"-s", "ac ls bq wn my uv fj pz tr ok",
		"-g", "HAG",
		"-N", "6",
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "MYIJE XBYWP\n", out.String())
}
