package config

import (
	"fmt"
	"log"
	"time"

	"github.com/PolicyEngine/Autumn-budget-local-area/dataset"
)

var (
	// Data is the session-wide dataset store. Loaded once at startup,
	// read-only afterwards.
	Data *dataset.Store
)

const (
	ConstituencyFile = "constituency.csv"
	HouseholdFile    = "households.csv"

	loadRetryDelay = 5 * time.Second
)

// InitDataWithRetry loads the datasets, retrying on transient failures
// (e.g. the data host not being up yet).
func InitDataWithRetry(maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = InitData()
		if err == nil {
			return nil
		}
		log.Printf("Failed to load datasets (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(loadRetryDelay)
	}
	return fmt.Errorf("failed to load datasets after %d attempts: %v", maxRetries, err)
}

// InitData fetches and parses the static dataset files. A failed fetch is
// logged and leaves that row set empty; the server serves empty series
// rather than refusing to start.
func InitData() error {
	dataDir := GetDataDir()
	dataURL := GetDataURL()
	if dataURL != "" {
		log.Printf("Loading datasets from %s", dataURL)
	} else {
		log.Printf("Loading datasets from %s", dataDir)
	}

	loader := dataset.NewLoader(dataDir, dataURL)

	constituencyRows, err := loader.LoadFile(ConstituencyFile)
	if err != nil {
		return err
	}

	householdRows, err := loader.LoadFile(HouseholdFile)
	if err != nil {
		// Household-level data is optional: the constituency series still
		// work without it, the household charts render empty.
		log.Printf("Warning: could not load %s: %v", HouseholdFile, err)
		householdRows = nil
	}

	Data = dataset.NewStore(constituencyRows, householdRows)
	log.Printf("Indexed %d constituencies", len(Data.Constituencies()))
	return nil
}

// CheckDataHealth reports whether constituency data is available.
func CheckDataHealth() error {
	if Data == nil {
		return fmt.Errorf("dataset store not initialized")
	}
	if Data.Empty() {
		return fmt.Errorf("no constituency data loaded")
	}
	return nil
}
