package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/BielJM1/MRTAOptima/sim"
)

// Define struct for YAML
type ScenarioPresets struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

type Scenario struct {
	NumTasks          int     `yaml:"num_tasks"`
	NumRobots         int     `yaml:"num_robots"`
	EnvWidth          float64 `yaml:"env_width"`
	EnvHeight         float64 `yaml:"env_height"`
	MinTaskSeparation float64 `yaml:"min_task_separation"`
	MinET             int     `yaml:"min_et"`
	MaxET             int     `yaml:"max_et"`
	MinDeadlineFactor float64 `yaml:"min_deadline_factor"`
	MaxDeadlineFactor float64 `yaml:"max_deadline_factor"`
	MinUtility        float64 `yaml:"min_utility"`
	MaxUtility        float64 `yaml:"max_utility"`
	MaxRobotsPerTask  int     `yaml:"max_robots_per_task"`
	MinSpeedFactor    float64 `yaml:"min_speed_factor"`
	MinWorkCapacity   int     `yaml:"min_work_capacity"`
	MaxWorkCapacity   int     `yaml:"max_work_capacity"`
}

// GetScenarioConfig reads a YAML preset file and returns the named scenario,
// or nil when the preset does not exist.
func GetScenarioConfig(scenarioFilePath string, scenarioName string) *sim.ScenarioConfig {
	// Read YAML file
	data, err := os.ReadFile(scenarioFilePath)
	if err != nil {
		logrus.Fatalf("unable to read scenario file %s: %v", scenarioFilePath, err)
	}

	// Parse YAML
	var presets ScenarioPresets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		logrus.Fatalf("unable to parse scenario file %s: %v", scenarioFilePath, err)
	}

	if scenario, scenarioExists := presets.Scenarios[scenarioName]; scenarioExists {
		logrus.Infof("Using preset scenario %v\n", scenarioName)
		return &sim.ScenarioConfig{
			NumTasks:          scenario.NumTasks,
			NumRobots:         scenario.NumRobots,
			EnvWidth:          scenario.EnvWidth,
			EnvHeight:         scenario.EnvHeight,
			MinTaskSeparation: scenario.MinTaskSeparation,
			MinET:             scenario.MinET,
			MaxET:             scenario.MaxET,
			MinDeadlineFactor: scenario.MinDeadlineFactor,
			MaxDeadlineFactor: scenario.MaxDeadlineFactor,
			MinUtility:        scenario.MinUtility,
			MaxUtility:        scenario.MaxUtility,
			MaxRobotsPerTask:  scenario.MaxRobotsPerTask,
			MinSpeedFactor:    scenario.MinSpeedFactor,
			MinWorkCapacity:   scenario.MinWorkCapacity,
			MaxWorkCapacity:   scenario.MaxWorkCapacity,
		}
	}
	return nil
}
