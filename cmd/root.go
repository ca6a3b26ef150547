/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bgallie/enigma/engine"
	"github.com/bgallie/enigma/filters/groups"
	"github.com/friendsofgo/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfgFile         string
	inputFileName   string
	outputFileName  string
	counterFileName string
	verbosity       int
	GitCommit       string = "not set"
	BuildDate       string = "not set"
	Version         string = "dev"
)

var (
	// appFs is where every file is opened; tests replace it.
	appFs afero.Fs = afero.NewOsFs()
	// notepad logs to stderr, keeping stdout for the text.
	notepad = jww.NewNotepad(jww.LevelWarn, jww.LevelTrace, os.Stderr, io.Discard, "", 0)
)

const (
	enigmaConfigFile = ".enigma"
	enigmaCountFile  = ".enigma.counters.yaml"
)

// machineFlags are the flags that viper also reads from the config file and
// the environment.
var machineFlags = []string{
	"reflector",
	"rotors",
	"ring-setting",
	"plugboard-setting",
	"indicator-setting",
	"group-size",
	"groups-per-line",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "An Enigma M3 cipher machine",
	Long: `enigma enciphers and deciphers text the way the three rotor Enigma M3 did.
The machine is reciprocal: text enciphered with a setting is deciphered by
enciphering it again with the same setting.  Letters are read from the input,
everything else is ignored, and the result is written in groups.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return encipher(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
	rootCmd.SetVersionTemplate(fmt.Sprintf("enigma {{.Version}} (commit %s, %s)\n", GitCommit, BuildDate))
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	pf.StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to encipher/decipher.")
	pf.StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file receiving the enciphered/deciphered text.")
	pf.CountVarP(&verbosity, "verbose", "v", "report what the machine is doing on stderr (-vv for more)")
	addMachineFlags(pf)

	viper.SetEnvPrefix("enigma")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, name := range machineFlags {
		cobra.CheckErr(viper.BindPFlag(name, pf.Lookup(name)))
	}
}

// addMachineFlags defines the machine and output flags.
func addMachineFlags(fs *pflag.FlagSet) {
	d := engine.DefaultSettings()
	fs.StringP("reflector", "u", d.Reflector, "Reflector (Ger: Umkehrwalze)")
	fs.StringP("rotors", "w", d.Rotors, "Rotor order, left to right (Ger: Walzenlage)")
	fs.StringP("ring-setting", "r", d.RingSetting, "Ring setting (Ger: Ringstellung)")
	fs.StringP("plugboard-setting", "s", d.Plugboard, "Plugboard transpositions (Ger: Steckerverbindungen)")
	fs.StringP("indicator-setting", "g", d.Indicator, "Indicator setting (Ger: Grundstellung)")
	fs.IntP("group-size", "G", groups.DefaultGroupSize, "Number of characters per group in the output.")
	fs.IntP("groups-per-line", "N", groups.DefaultGroupsPerLine, "Number of groups per line in the output.")
}

// normalizeFlagName accepts the German flag names.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "umkehrwalze":
		name = "reflector"
	case "walzenlage":
		name = "rotors"
	case "ringstellung":
		name = "ring-setting"
	case "steckerverbindungen":
		name = "plugboard-setting"
	case "grundstellung":
		name = "indicator-setting"
	case "hilfe":
		name = "help"
	}
	return pflag.NormalizedName(name)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	initLogging()
	viper.SetFs(appFs)
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory with name ".enigma" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(enigmaConfigFile)
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		notepad.INFO.Println("Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		cobra.CheckErr(err)
	}

	counterFileName = fmt.Sprintf("%s%c%s", home, os.PathSeparator, enigmaCountFile)
}

func initLogging() {
	switch {
	case verbosity >= 2:
		notepad.SetStdoutThreshold(jww.LevelDebug)
	case verbosity == 1:
		notepad.SetStdoutThreshold(jww.LevelInfo)
	default:
		notepad.SetStdoutThreshold(jww.LevelWarn)
	}
}

// settingString returns a machine setting as a single string.  Settings
// in the config file may be written as YAML lists, e.g. rotors: [II, IV, I].
func settingString(key string) (string, error) {
	v := viper.Get(key)
	switch v.(type) {
	case []interface{}, []string:
		parts, err := cast.ToStringSliceE(v)
		if err != nil {
			return "", errors.Wrapf(err, "reading %s", key)
		}
		return strings.Join(parts, " "), nil
	}
	s, err := cast.ToStringE(v)
	return s, errors.Wrapf(err, "reading %s", key)
}

func machineSettings() (engine.Settings, error) {
	var s engine.Settings
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"reflector", &s.Reflector},
		{"rotors", &s.Rotors},
		{"ring-setting", &s.RingSetting},
		{"plugboard-setting", &s.Plugboard},
		{"indicator-setting", &s.Indicator},
	} {
		v, err := settingString(f.key)
		if err != nil {
			return s, err
		}
		*f.dst = v
	}
	return s, nil
}

// initEngine builds the machine from the flags, the config file and the
// environment.
func initEngine() (*engine.Machine, error) {
	s, err := machineSettings()
	if err != nil {
		return nil, err
	}
	m, err := engine.Configure(s)
	if err != nil {
		return nil, err
	}
	cs := m.Config().Settings()
	notepad.INFO.Printf("Machine: %s, rotors %s, rings %s, indicator %s\n",
		cs.Reflector, cs.Rotors, cs.RingSetting, cs.Indicator)
	notepad.DEBUG.Print(m)
	return m, nil
}

// outputGrouping returns the group size and the number of groups per line.
// When the output is a terminal and the number of groups per line was not
// chosen, as many groups as fit the terminal are put on a line.
func outputGrouping(cmd *cobra.Command, out io.Writer) (int, int, error) {
	size := viper.GetInt("group-size")
	perLine := viper.GetInt("groups-per-line")
	if err := groups.Check(size, perLine); err != nil {
		return 0, 0, err
	}

	if cmd.Flags().Changed("groups-per-line") || viper.InConfig("groups-per-line") {
		return size, perLine, nil
	}
	if n, ok := out.(nopWriteCloser); ok {
		out = n.Writer
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			perLine = (width + 1) / (size + 1)
			if perLine < 1 {
				perLine = 1
			} else if perLine > groups.MaxGroupsPerLine {
				perLine = groups.MaxGroupsPerLine
			}
		}
	}
	return size, perLine, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

/*
	getInputAndOutputFiles will return the input and output files to use while
	enciphering/deciphering text.  If input and/or output files names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles(cmd *cobra.Command) (io.ReadCloser, io.WriteCloser, error) {
	var fin io.ReadCloser
	var fout io.WriteCloser

	if len(inputFileName) > 0 && inputFileName != "-" {
		f, err := appFs.Open(inputFileName)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening input")
		}
		fin = f
	} else {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			fmt.Fprintln(os.Stderr, "Enter the text, end it with Ctrl-D:")
		}
		fin = io.NopCloser(in)
	}

	if len(outputFileName) > 0 && outputFileName != "-" {
		f, err := appFs.Create(outputFileName)
		if err != nil {
			fin.Close()
			return nil, nil, errors.Wrap(err, "creating output")
		}
		fout = f
	} else {
		fout = nopWriteCloser{cmd.OutOrStdout()}
	}

	return fin, fout, nil
}

// checkError returns e unless it is io.EOF or io.ErrUnexpectedEOF.
func checkError(e error) error {
	if e == io.EOF || e == io.ErrUnexpectedEOF {
		return nil
	}
	return e
}
