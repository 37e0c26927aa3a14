package config

// Config is the .pickles/config.yml document.
type Config struct {
	Version         int             `yaml:"version"`
	Language        string          `yaml:"language"`
	Features        []string        `yaml:"features"`
	Results         ResultsConfig   `yaml:"results"`
	SystemUnderTest SystemUnderTest `yaml:"system_under_test"`
}

// SystemUnderTest names the product the features describe. Both fields are
// optional and only shown in reports.
type SystemUnderTest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ResultsConfig selects the test result files to correlate.
type ResultsConfig struct {
	Format          string   `yaml:"format"`
	Files           []string `yaml:"files"`
	CaseInsensitive bool     `yaml:"case_insensitive"`
}
