// Package constants provides shared constants for the fitness-forecast application.
package constants

// DateLayout is the calendar-day format used in log files, configuration and
// output.
const DateLayout = "2006-01-02"

// Baselines for baseline-relative metrics.
const (
	// BaselineScore is the value representing no change from current ability.
	BaselineScore = 100.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Energy and unit constants
const (
	// KcalPerPound is the energy content of one pound of body weight.
	KcalPerPound = 3500.0

	// KcalPerKilogram is the energy content of one kilogram of body weight.
	KcalPerKilogram = 7700.0

	// KcalPerGramProtein is the energy content of one gram of protein.
	KcalPerGramProtein = 4.0

	// KcalPerGramCarbohydrate is the energy content of one gram of carbohydrate.
	KcalPerGramCarbohydrate = 4.0

	// KcalPerGramFat is the energy content of one gram of fat.
	KcalPerGramFat = 9.0

	// UnitPound and UnitKilogram are the supported weight units.
	UnitPound    = "lb"
	UnitKilogram = "kg"

	// MaxSafePoundsPerWeek is the weight change pace above which a target is
	// flagged as aggressive.
	MaxSafePoundsPerWeek = 2.0

	// PoundsPerKilogram converts kilograms to pounds.
	PoundsPerKilogram = 2.20462
)

// Engine defaults
const (
	// DefaultWindowDays is the historical window aggregated when none is configured.
	DefaultWindowDays = 28

	// DefaultCardioCap bounds the cardiovascular endurance gain over any horizon.
	DefaultCardioCap = 50.0

	// DefaultCardioTau is the cumulative cardio load (MET-minutes) reaching
	// ~63% of DefaultCardioCap.
	DefaultCardioTau = 20000.0

	// DefaultStrengthCap bounds the per-muscle strength gain over any horizon.
	DefaultStrengthCap = 50.0

	// DefaultStrengthTau is the cumulative training volume reaching ~63% of
	// DefaultStrengthCap.
	DefaultStrengthTau = 600.0

	// DefaultCategoryWeight is the cardio weight of an unrecognized exercise category.
	DefaultCategoryWeight = 4.0

	// DefaultWeightTolerance is the weight difference (in weight units) treated as on track.
	DefaultWeightTolerance = 0.5

	// DefaultCardioTolerance is the cardio shortfall treated as on track.
	DefaultCardioTolerance = 2.0

	// DefaultMuscleTolerance is the muscle strength shortfall treated as on track.
	DefaultMuscleTolerance = 2.0

	// SignificantShortfall is the cardio shortfall above which wording escalates.
	SignificantShortfall = 10.0

	// WorkoutVolume is the training volume credited to a muscle group per logged workout.
	WorkoutVolume = 10.0

	// MaxHorizonDays is the horizon above which a scenario produces a warning.
	MaxHorizonDays = 365
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (1 MB)
	DefaultMaxUploadSizeBytes int64 = 1024 * 1024
)
