package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DocumentFormat is the encoding of an input document
type DocumentFormat string

const (
	FormatYAML DocumentFormat = "yaml"
	FormatTOML DocumentFormat = "toml"
	FormatJSON DocumentFormat = "json"
)

// FormatForFile picks the document format from a file extension, defaulting to YAML
func FormatForFile(filename string) DocumentFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a configuration from a YAML, TOML or JSON file and validates it
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatForFile(filename))
}

// Parse decodes a configuration document and validates it
func (ip *InputParser) Parse(data []byte, format DocumentFormat) (*domain.Configuration, error) {
	config, err := ip.Decode(data, format)
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Decode decodes a configuration document without validating it. Unknown
// keys and malformed values are reported as InputFormatErrors.
func (ip *InputParser) Decode(data []byte, format DocumentFormat) (*domain.Configuration, error) {
	var config domain.Configuration
	var err error
	switch format {
	case FormatTOML:
		err = decodeTOML(data, &config)
	case FormatJSON:
		err = DecodeJSON(data, &config)
	case FormatYAML:
		err = decodeYAML(data, &config)
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", strings.ToUpper(string(format)), err)
	}
	return &config, nil
}

// CreateExampleConfiguration returns a configuration exercising every calculator
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	yearsOfService := 20

	names := []string{"Bucket 1", "Bucket 2", "Bucket 3", "Bucket 4", "Bucket 5", "Retirement Bucket"}
	balances := []int64{30000, 20000, 40000, 8000, 25000, 15000}
	contributions := []int64{5000, 3000, 7500, 1000, 5000, 2000}
	payoutYears := []int{2032, 2033, 2034, 2035, 2036, 2030}
	buckets := make([]domain.Bucket, len(names))
	for i := range names {
		buckets[i] = domain.Bucket{
			Name:                 names[i],
			StartingBalance:      decimal.NewFromInt(balances[i]),
			StartingContribution: decimal.NewFromInt(contributions[i]),
			PayoutYear:           payoutYears[i],
		}
	}

	return &domain.Configuration{
		Buckets: &domain.BucketPlan{
			StartYear:        2025,
			CurrentAge:       58,
			RetirementAge:    62,
			CurrentSalary:    decimal.NewFromInt(100000),
			COLA:             decimal.NewFromFloat(0.03),
			PreReturn:        decimal.NewFromFloat(0.07),
			PostReturn:       decimal.NewFromFloat(0.05),
			ContributionMode: domain.ContributionAmount,
			RateSource:       domain.RateSourceGlobal,
			Buckets:          buckets,
		},
		Accumulation: &domain.AccumulationPlan{
			Person: domain.Person{
				BirthDate:      domain.NewDate(1970, 3, 10),
				YearsOfService: &yearsOfService,
			},
			EligiblePay:   decimal.NewFromInt(100000),
			ReturnRate:    decimal.NewFromFloat(0.055),
			PayGrowthRate: decimal.NewFromFloat(0.03),
			TargetAge:     65,
		},
		LumpSum: &domain.LumpSumPlan{
			LumpSumAmount:   decimal.NewFromInt(121637),
			StartingBalance: decimal.NewFromInt(106837),
			AnnualPayment:   decimal.NewFromInt(14800),
			ReturnRate:      decimal.NewFromFloat(0.06),
			TaxRate:         decimal.NewFromFloat(0.15),
			DiscountRate:    decimal.NewFromFloat(0.025),
			Years:           10,
		},
		SharePlan: &domain.SharePlan{
			StartYear:     2032,
			EndYear:       2044,
			SharesPerYear: decimal.NewFromInt(1080),
			SharePrice:    decimal.NewFromInt(32),
			TaxRate:       decimal.NewFromFloat(0.28),
			GrowthRate:    decimal.NewFromFloat(0.05),
		},
		SocialSecurity: &domain.SocialSecurityPlan{
			BirthDate:  domain.NewDate(1965, 5, 15),
			COLARate:   decimal.NewFromFloat(0.03),
			COLATiming: domain.COLAJanuary,
			HorizonAge: 92,
			Claims: []domain.Claim{
				{Age: 62, MonthlyBenefit: decimal.NewFromInt(1800)},
				{Age: 67, MonthlyBenefit: decimal.NewFromInt(2500)},
				{Age: 70, MonthlyBenefit: decimal.NewFromInt(3100)},
			},
		},
	}
}

// WriteExample writes the example configuration as YAML
func (ip *InputParser) WriteExample(filename string) error {
	data, err := yaml.Marshal(ip.CreateExampleConfiguration())
	if err != nil {
		return fmt.Errorf("failed to encode example configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
