package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	esm "github.com/WindResource/Energy-System-Modeling"
	"github.com/google/uuid"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

var (
	inputF  *string
	outputD *string
	configF *string
	logLvl  *int
)

func main() {
	inputF = flag.String("input", "input.json", "Path to the input instance")
	outputD = flag.String("output", ".", "Directory for the result files")
	configF = flag.String("config", "", "Path to a YAML scenario file. Defaults apply when empty")
	logLvl = flag.Int("log", 2, "Level of the logging output. Higher value is more verbose. Range 1-4")

	flag.Parse()

	esm.InitLoggers(*logLvl)

	cfg, err := esm.LoadConfig(*configF)
	if err != nil {
		esm.Log(1, "At %s: %s\n", *configF, err.Error())
		return
	}

	instStr, err := os.ReadFile(*inputF)
	if err != nil {
		esm.Log(1, "At %s: %s\n", *inputF, err.Error())
		return
	}
	var inst esm.Instance
	if err := json.Unmarshal(instStr, &inst); err != nil {
		esm.Log(1, "At %s: %s\n", *inputF, err.Error())
		return
	}
	if err := esm.ValidateInstance(&inst, cfg); err != nil {
		esm.Log(1, "At %s: %s\n", *inputF, err.Error())
		return
	}

	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	sys := esm.SysInfo{Platform: hostStat.Platform, RAM: fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)}
	if len(cpuStat) > 0 {
		sys.CPU = cpuStat[0].ModelName
	}

	if err := os.MkdirAll(*outputD, 0755); err != nil {
		esm.Log(1, "At %s: %s\n", *outputD, err.Error())
		return
	}

	net := esm.BuildNetwork(&inst, cfg)
	esm.Log(2, "viable network: %d wind farms, %d hubs, %d substations, %d/%d/%d/%d cables\n",
		len(net.WindFarms), len(net.Hubs), len(net.Substations),
		len(net.EC1), len(net.EC2), len(net.EC3), len(net.ONC))

	orch := esm.NewOrchestrator(net, cfg)
	orch.LogDir = *outputD

	info := esm.RunInfo{
		RunID:     uuid.NewString(),
		Instance:  inst.Name,
		Note:      cfg.Note,
		VarCounts: orch.Model.VarCounts(),
		System:    sys,
	}

	results, notes, runErr := orch.Run()
	info.Stages = notes

	for i := range results {
		writeStageFiles(cfg, &results[i])
	}
	writeJSON(resultFile(cfg, "run", 0), info)

	if runErr != nil {
		esm.Log(1, "At %s: %s\n", *inputF, runErr.Error())
		return
	}
	esm.Log(2, "run %s finished with %d stage results\n", info.RunID, len(results))
}

func resultFile(cfg *esm.Config, class string, year int) string {
	name := fmt.Sprintf("r_%s_%s_%s_%s.json", cfg.StageMode(), cfg.ModelType, cfg.CrossBorder, class)
	if year > 0 {
		name = fmt.Sprintf("r_%s_%s_%s_%s_%d.json", cfg.StageMode(), cfg.ModelType, cfg.CrossBorder, class, year)
	}
	return filepath.Join(*outputD, name)
}

func writeStageFiles(cfg *esm.Config, res *esm.StageResult) {
	writeJSON(resultFile(cfg, "wf_ids", res.Year), res.WindFarms)
	writeJSON(resultFile(cfg, "eh_ids", res.Year), res.Hubs)
	writeJSON(resultFile(cfg, "onss_ids", res.Year), res.Substations)
	writeJSON(resultFile(cfg, "ec1_ids", res.Year), res.EC1)
	writeJSON(resultFile(cfg, "ec2_ids", res.Year), res.EC2)
	writeJSON(resultFile(cfg, "ec3_ids", res.Year), res.EC3)
	writeJSON(resultFile(cfg, "onc_ids", res.Year), res.ONC)
	writeJSON(resultFile(cfg, "global", res.Year), res.Totals)
}

func writeJSON(fileName string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		esm.Log(1, "At %s: %s\n", fileName, err.Error())
		return
	}
	if err := os.WriteFile(fileName, data, 0644); err != nil {
		esm.Log(1, "At %s: %s\n", fileName, err.Error())
	}
}
