// Package main - persistence.go
//
// This file implements data persistence for the detection parameters.
// Uses JSON format for human-readable and easily editable storage.
//
// File Format:
// JSON with 2-space indentation for readability. Example structure:
// {
//   "params": {
//     "confidence_threshold": 0.8,
//     "day_threshold": 0.5,
//     "contrast_low": 0.1,
//     ...
//   }
// }
//
// Save Triggers:
//   - Graceful shutdown (quit button, signal handler)
//
// Load Behavior:
//   - If data.json exists: Load parameters
//   - If file doesn't exist: Use defaults (file is written at shutdown so the
//     user has something to edit)
//   - If file is corrupted: Log error, use defaults
//
// Error Handling:
// Load errors are logged but do not prevent bot startup. The bot falls back
// to default parameters and continues running.
package main

import (
	"encoding/json"
	"os"
)

const dataFile = "data.json"

// SaveData saves the detection parameters to data.json.
//
// Creates or overwrites the data file. Uses JSON encoding with 2-space
// indentation for human readability.
//
// Parameters:
//   - data: PersistentData structure containing the parameters
//
// Returns:
//   - error: File creation or encoding error, nil on success
func SaveData(data *PersistentData) error {
	file, err := os.Create(dataFile)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(data)
	if err != nil {
		return err
	}

	LogInfo("Data saved to %s", dataFile)
	return nil
}

// LoadData loads the detection parameters from data.json.
//
// Attempts to read and parse the data file. If the file doesn't exist or is
// corrupted, returns default parameters instead of failing, so a manually
// edited file can never keep the bot from starting.
//
// Returns:
//   - *PersistentData: Loaded or default parameters
//   - error: Nil on success or when using defaults, non-nil for unexpected
//     errors
func LoadData() (*PersistentData, error) {
	// Check if file exists
	if _, err := os.Stat(dataFile); os.IsNotExist(err) {
		LogInfo("No existing data file, using default parameters")
		return NewPersistentData(), nil
	}

	file, err := os.Open(dataFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var data PersistentData
	decoder := json.NewDecoder(file)
	err = decoder.Decode(&data)
	if err != nil {
		LogError("Failed to decode data file: %v", err)
		return NewPersistentData(), nil
	}

	// A hand-edited file may omit the params block entirely.
	if data.Params == nil {
		data.Params = NewDinoParams()
	}

	LogInfo("Data loaded from %s", dataFile)
	return &data, nil
}
