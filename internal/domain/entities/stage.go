package entities

import "fmt"

// Stage is the ordinal position in the fixed sequence of journey screens
type Stage int

const (
	StageIdentity Stage = iota
	StageQualifying
	StageProcedure
	StageProvider
	StageAddon
	StageFacility
	StageFinalize
)

// StageCount is the number of defined stages
const StageCount = int(StageFinalize) + 1

var stageNames = [StageCount]string{
	"IDENTITY",
	"QUALIFYING",
	"PROCEDURE",
	"PROVIDER",
	"ADDON",
	"FACILITY",
	"FINALIZE",
}

// Valid reports whether the stage maps to a defined screen
func (s Stage) Valid() bool {
	return s >= StageIdentity && s <= StageFinalize
}

func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("STAGE(%d)", int(s))
	}
	return stageNames[s]
}
