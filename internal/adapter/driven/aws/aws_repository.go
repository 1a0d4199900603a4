package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/entity"
	"github.com/diillson/cloud-cost-ai-go/internal/domain/repository"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"go.uber.org/zap"
)

const (
	costMetric = "UnblendedCost"
	dateLayout = "2006-01-02"

	// Cost Explorer e Budgets só respondem em us-east-1
	globalRegion = "us-east-1"
)

// Clientes mínimos usados pelo repositório; permitem substituir o SDK nos testes.
type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type budgetsAPI interface {
	DescribeBudget(ctx context.Context, params *budgets.DescribeBudgetInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// serviceAliases mapeia os nomes longos do Cost Explorer para as chaves curtas
// usadas pelo advisor.
var serviceAliases = map[string]string{
	"Amazon Elastic Compute Cloud - Compute": "EC2",
	"EC2 - Other":                            "EC2",
	"Amazon Relational Database Service":     "RDS",
	"Amazon Simple Storage Service":          "S3",
	"AWS Lambda":                             "Lambda",
	"AWS Data Transfer":                      "DataTransfer",
}

// AWSRepositoryImpl implementa o AWSRepository com cache de clientes.
type AWSRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
	now         func() time.Time
}

// NewAWSRepository cria uma nova implementação do AWSRepository.
func NewAWSRepository() repository.AWSRepository {
	return &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
		now:         time.Now,
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, service string) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s-%s-%s", profile, globalRegion, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	regionalCfg.Region = globalRegion

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "costexplorer":
		client = costexplorer.NewFromConfig(regionalCfg)
	case "budgets":
		client = budgets.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

// GetAWSProfiles lista os perfis encontrados em ~/.aws/credentials e ~/.aws/config.
// Sem arquivos de configuração a lista volta vazia.
func (r *AWSRepositoryImpl) GetAWSProfiles() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return profilesFromDir(filepath.Join(homeDir, ".aws"))
}

func profilesFromDir(awsDir string) []string {
	profiles := make(map[string]bool)
	profileRegex := regexp.MustCompile(`\[([^]]+)\]`)

	parseFile := func(path string, isConfig bool) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		matches := profileRegex.FindAllStringSubmatch(string(content), -1)
		for _, match := range matches {
			profileName := match[1]
			if isConfig {
				profileName = strings.TrimPrefix(profileName, "profile ")
			}
			profiles[profileName] = true
		}
	}

	parseFile(filepath.Join(awsDir, "credentials"), false)
	parseFile(filepath.Join(awsDir, "config"), true)

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	client, err := r.getServiceClient(ctx, profile, "sts")
	if err != nil {
		return "", err
	}
	stsClient := client.(stsAPI)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %s: %w", profile, err)
	}
	return aws.ToString(result.Account), nil
}

// LoadCostRecords busca o custo diário por serviço e região dos últimos
// query.Days dias no Cost Explorer.
func (r *AWSRepositoryImpl) LoadCostRecords(ctx context.Context, query entity.CostQuery) ([]entity.CostRecord, error) {
	client, err := r.getServiceClient(ctx, query.Profile, "costexplorer")
	if err != nil {
		return nil, err
	}
	ceClient := client.(costExplorerAPI)

	days := query.Days
	if days <= 0 {
		days = types.DefaultTimeRange
	}
	today := r.now().UTC()
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -days)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format(dateLayout)),
			End:   aws.String(end.Format(dateLayout)),
		},
		Granularity: ceTypes.GranularityDaily,
		Metrics:     []string{costMetric},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("REGION")},
		},
	}

	var records []entity.CostRecord
	pages := 0
	for {
		result, err := ceClient.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error querying Cost Explorer for profile %s: %w", query.Profile, err)
		}
		pages++

		pageRecords, err := recordsFromResults(result.ResultsByTime)
		if err != nil {
			return nil, err
		}
		records = append(records, pageRecords...)

		if aws.ToString(result.NextPageToken) == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	logging.Named("DataLoader").Info("cost explorer data loaded",
		zap.String("profile", query.Profile),
		zap.String("start", start.Format(dateLayout)),
		zap.String("end", end.Format(dateLayout)),
		zap.Int("pages", pages),
		zap.Int("rows", len(records)))
	return records, nil
}

// recordsFromResults converte os grupos (SERVICE, REGION) de cada dia em registros.
func recordsFromResults(results []ceTypes.ResultByTime) ([]entity.CostRecord, error) {
	var records []entity.CostRecord
	for _, period := range results {
		if period.TimePeriod == nil {
			continue
		}
		date, err := time.Parse(dateLayout, aws.ToString(period.TimePeriod.Start))
		if err != nil {
			return nil, fmt.Errorf("invalid Cost Explorer period start %q: %w", aws.ToString(period.TimePeriod.Start), err)
		}

		for _, group := range period.Groups {
			metric, ok := group.Metrics[costMetric]
			if !ok || len(group.Keys) < 2 {
				continue
			}
			cost, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid cost amount for %s: %w", group.Keys[0], err)
			}
			if cost <= 0 {
				continue
			}
			records = append(records, entity.CostRecord{
				Date:    date,
				Service: NormalizeServiceName(group.Keys[0]),
				Region:  group.Keys[1],
				CostUSD: cost,
			})
		}
	}
	return records, nil
}

// NormalizeServiceName converts a Cost Explorer service name into the short key
// used by the recommendation table. Unknown names are returned unchanged.
func NormalizeServiceName(name string) string {
	if alias, ok := serviceAliases[name]; ok {
		return alias
	}
	if strings.HasPrefix(name, "AWS Data Transfer") {
		return "DataTransfer"
	}
	return name
}

// GetBudget lê o limite e o gasto de um orçamento do AWS Budgets.
func (r *AWSRepositoryImpl) GetBudget(ctx context.Context, profile, name string) (entity.BudgetInfo, error) {
	client, err := r.getServiceClient(ctx, profile, "budgets")
	if err != nil {
		return entity.BudgetInfo{}, err
	}
	budgetsClient := client.(budgetsAPI)

	accountID, err := r.GetAccountID(ctx, profile)
	if err != nil {
		return entity.BudgetInfo{}, err
	}

	result, err := budgetsClient.DescribeBudget(ctx, &budgets.DescribeBudgetInput{
		AccountId:  aws.String(accountID),
		BudgetName: aws.String(name),
	})
	if err != nil {
		return entity.BudgetInfo{}, fmt.Errorf("error describing budget %s: %w", name, err)
	}
	if result.Budget == nil || result.Budget.BudgetLimit == nil {
		return entity.BudgetInfo{}, fmt.Errorf("budget %s has no limit defined", name)
	}

	b := entity.BudgetInfo{Name: aws.ToString(result.Budget.BudgetName)}
	b.Limit, err = strconv.ParseFloat(aws.ToString(result.Budget.BudgetLimit.Amount), 64)
	if err != nil {
		return entity.BudgetInfo{}, fmt.Errorf("invalid limit for budget %s: %w", name, err)
	}
	if spend := result.Budget.CalculatedSpend; spend != nil {
		if spend.ActualSpend != nil {
			b.Actual, _ = strconv.ParseFloat(aws.ToString(spend.ActualSpend.Amount), 64)
		}
		if spend.ForecastedSpend != nil {
			b.Forecast, _ = strconv.ParseFloat(aws.ToString(spend.ForecastedSpend.Amount), 64)
		}
	}
	return b, nil
}
