package domain

// DataType identifies the kind of personal data a detection rule looks for.
type DataType string

const (
	DataTypeEmail       DataType = "Email"
	DataTypePhoneNumber DataType = "PhoneNumber"
	DataTypeSSN         DataType = "SSN"
	DataTypeCreditCard  DataType = "CreditCard"
	DataTypeIPAddress   DataType = "IPAddress"
	DataTypeDateOfBirth DataType = "DateOfBirth"
)

// Classification is the GDPR protection tier of a detected value.
type Classification string

const (
	ClassificationPersonal  Classification = "PersonalData"
	ClassificationSensitive Classification = "SensitivePersonalData"
)

// Risk derives the risk level from the classification tier:
// special-category data is always High, everything else Medium.
func (c Classification) Risk() RiskLevel {
	if c == ClassificationSensitive {
		return RiskHigh
	}
	return RiskMedium
}

// DetectionMethod records which part of an object produced a match.
type DetectionMethod string

const (
	DetectionMetadata DetectionMethod = "MetadataAnalysis"
	DetectionContent  DetectionMethod = "ContentAnalysis"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Finding is a single personal-data detection event. Findings are
// created once by the classifier and never mutated afterwards.
type Finding struct {
	ID              string
	Location        string
	DataType        DataType
	Classification  Classification
	GDPRCategory    string
	DetectionMethod DetectionMethod
	RiskLevel       RiskLevel
}
