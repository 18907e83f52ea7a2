// Package export flattens archived capture snapshots into tabular form.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mkraj/apiprobe/internal/store"
)

// RadioHeaders is the column order of the radio table.
var RadioHeaders = []string{
	"timestamp",
	"controller_name",
	"radio_name",
	"pci",
	"earfcn",
	"freq_mhz",
	"bw_mhz",
	"bw_rb",
	"optimal_power_dbm",
	"signal_power_dbm",
	"default_max_transmit_power",
	"configured_max_transmit_power",
	"rf_state",
	"rf_state_change_pending",
	"sas_grant_status",
}

// DeviceHeaders is the column order of the device table.
var DeviceHeaders = []string{
	"timestamp",
	"name",
	"phone_model",
	"phone_model_number",
	"status",
	"connected_controller_name",
}

// Tables holds the flattened rows of every read snapshot.
type Tables struct {
	Radios  [][]string
	Devices [][]string
}

type snapshotDoc struct {
	Timestamp   string            `json:"timestamp"`
	Controllers []controllerEntry `json:"controllers"`
	Devices     []deviceEntry     `json:"devices"`
}

type controllerEntry struct {
	Name   string       `json:"name"`
	Radios []radioEntry `json:"radios"`
}

type radioEntry struct {
	Name                       string  `json:"name"`
	PCI                        int     `json:"pci"`
	EARFCNDL                   *int    `json:"earfcndl"`
	FrequencyDL                float64 `json:"frequency_dl"`
	ChannelBandwidth           float64 `json:"channel_bandwidth"`
	OptimalPower               float64 `json:"optimal_power"`
	SignalPowerDBM             float64 `json:"signal_power_dbm"`
	DefaultMaxTransmitPower    float64 `json:"default_max_transmit_power"`
	ConfiguredMaxTransmitPower float64 `json:"configured_max_transmit_power"`
	RFState                    string  `json:"rf_state"`
	RFStateChangePending       bool    `json:"rf_state_change_pending"`
	SASGrantStatus             string  `json:"sas_grant_status"`
}

type deviceEntry struct {
	Description    string `json:"description"`
	Name           string `json:"name"`
	Model          string `json:"model"`
	OpStatusName   string `json:"op_status_name"`
	ControllerName string `json:"controller_name"`
}

// Flatten appends one snapshot's rows to the tables. Offline devices are
// dropped; a radio without a downlink EARFCN reports 0.
func (t *Tables) Flatten(payload []byte) error {
	var doc snapshotDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	for _, ctrl := range doc.Controllers {
		for _, radio := range ctrl.Radios {
			earfcn := 0
			if radio.EARFCNDL != nil {
				earfcn = *radio.EARFCNDL
			}
			t.Radios = append(t.Radios, []string{
				doc.Timestamp,
				ctrl.Name,
				radio.Name,
				strconv.Itoa(radio.PCI),
				strconv.Itoa(earfcn),
				fmtFloat(radio.FrequencyDL),
				fmtFloat(radio.ChannelBandwidth / 5),
				fmtFloat(radio.ChannelBandwidth),
				fmtFloat(radio.OptimalPower),
				fmtFloat(radio.SignalPowerDBM),
				fmtFloat(radio.DefaultMaxTransmitPower),
				fmtFloat(radio.ConfiguredMaxTransmitPower),
				radio.RFState,
				strconv.FormatBool(radio.RFStateChangePending),
				radio.SASGrantStatus,
			})
		}
	}

	for _, dev := range doc.Devices {
		if dev.OpStatusName == "Offline" {
			continue
		}
		t.Devices = append(t.Devices, []string{
			doc.Timestamp,
			dev.Description,
			dev.Name,
			dev.Model,
			dev.OpStatusName,
			dev.ControllerName,
		})
	}

	return nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FromDir flattens every readable snapshot file under dir. Unreadable files
// are logged and skipped.
func FromDir(dir string, logger *slog.Logger) (*Tables, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot directory: %w", err)
	}

	tables := &Tables{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		logger.Info("reading snapshot", "file", entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("cannot read snapshot", "file", entry.Name(), "error", err)
			continue
		}
		if err := tables.Flatten(data); err != nil {
			logger.Error("cannot flatten snapshot", "file", entry.Name(), "error", err)
			continue
		}
	}
	return tables, nil
}

// FromStore flattens every snapshot in the archive.
func FromStore(snaps []store.Snapshot, logger *slog.Logger) *Tables {
	tables := &Tables{}
	for _, snap := range snaps {
		if err := tables.Flatten(snap.Payload); err != nil {
			logger.Error("cannot flatten snapshot", "captured_at", snap.CapturedAt, "error", err)
		}
	}
	return tables
}

// WriteCSV writes one table with its header row.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes one table to path.
func WriteCSVFile(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, headers, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
