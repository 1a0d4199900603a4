package csvdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/repository"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"go.uber.org/zap"
)

var requiredColumns = []string{"date", "service", "region", "cost_usd"}

// Layouts aceitos na coluna date, na ordem de tentativa.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// CSVRepositoryImpl lê registros de custo de um arquivo CSV.
type CSVRepositoryImpl struct {
	defaultPath string
}

// NewCSVRepository cria um CostDataRepository baseado em arquivo. defaultPath é
// usado quando a consulta não informa um caminho.
func NewCSVRepository(defaultPath string) repository.CostDataRepository {
	if defaultPath == "" {
		defaultPath = types.DefaultDataPath
	}
	return &CSVRepositoryImpl{defaultPath: defaultPath}
}

// LoadCostRecords lê o arquivo inteiro, preservando a ordem das linhas.
func (r *CSVRepositoryImpl) LoadCostRecords(ctx context.Context, query entity.CostQuery) ([]entity.CostRecord, error) {
	path := query.Path
	if path == "" {
		path = r.defaultPath
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &types.DataNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("error accessing data file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening data file: %w", err)
	}
	defer file.Close()

	records, err := parseCostCSV(ctx, file, path)
	if err != nil {
		return nil, err
	}

	logging.Named("DataLoader").Info("data loaded",
		zap.String("path", path),
		zap.Int("rows", len(records)))
	return records, nil
}

func parseCostCSV(ctx context.Context, in io.Reader, path string) ([]entity.CostRecord, error) {
	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &types.SchemaError{Path: path, Missing: requiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	index, err := columnIndex(header, path)
	if err != nil {
		return nil, err
	}

	var records []entity.CostRecord
	line, count := 1, 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		count++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return nil, &types.SchemaError{Path: path, Line: line, Reason: err.Error()}
		}
		// linhas em branco são puladas pelo reader; FieldPos dá a linha real
		line, _ = reader.FieldPos(0)
		if count%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlank(row) {
			continue
		}

		record, err := parseRow(row, index)
		if err != nil {
			return nil, &types.SchemaError{Path: path, Line: line, Reason: err.Error()}
		}
		records = append(records, record)
	}

	return records, nil
}

func columnIndex(header []string, path string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &types.SchemaError{Path: path, Missing: missing}
	}
	return index, nil
}

func parseRow(row []string, index map[string]int) (entity.CostRecord, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := parseDate(field("date"))
	if err != nil {
		return entity.CostRecord{}, err
	}

	rawCost := field("cost_usd")
	cost, err := strconv.ParseFloat(rawCost, 64)
	if err != nil {
		return entity.CostRecord{}, fmt.Errorf("invalid cost_usd %q", rawCost)
	}
	if cost < 0 {
		return entity.CostRecord{}, fmt.Errorf("negative cost_usd %q", rawCost)
	}

	service := field("service")
	if service == "" {
		return entity.CostRecord{}, errors.New("empty service")
	}

	return entity.CostRecord{
		Date:    date,
		Service: service,
		Region:  field("region"),
		CostUSD: cost,
	}, nil
}

// parseDate normaliza a data para meia-noite UTC.
func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
