package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	awsadapter "github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/aws"
	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/config"
	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driven/export"
	"github.com/alexlux58/AWS-ALERTING/internal/adapter/driving/handler"
	"github.com/alexlux58/AWS-ALERTING/internal/application/usecase"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/report"
	"github.com/alexlux58/AWS-ALERTING/internal/domain/repository"
	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
	"github.com/alexlux58/AWS-ALERTING/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	version    string
	console    types.ConsoleInterface
	configRepo repository.ConfigRepository
	exportRepo repository.ExportRepository
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(
	versionStr string,
	console types.ConsoleInterface,
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		console:    console,
		configRepo: configRepo,
		exportRepo: exportRepo,
	}

	rootCmd := &cobra.Command{
		Use:          "aws-alerting",
		Short:        "AWS daily cost report and budget remediation",
		Version:      version.FormatVersion(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			displayWelcomeBanner()
			go version.CheckLatestVersion(app.version)
		},
	}

	rootCmd.SetVersionTemplate(`{{printf "aws-alerting version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON file with parameters and environment overrides")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use (default: credential chain)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Write artifacts and the e-mail to --dir instead of S3 and SES; remediate only lists targets")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory for dry-run output (default: current directory)")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate, archive and e-mail the daily cost report",
		RunE:  app.runReport,
	}
	reportCmd.Flags().String("date", "", "Report date as YYYY-MM-DD (default: yesterday in SCHEDULE_TZ)")

	remediateCmd := &cobra.Command{
		Use:   "remediate",
		Short: "Start the tag-scoped stop automation",
		RunE:  app.runRemediate,
	}

	rootCmd.AddCommand(reportCmd, remediateCmd)
	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.ExecuteContext(context.Background())
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	profile, _ := cmd.Flags().GetString("profile")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	dir, _ := cmd.Flags().GetString("dir")
	date, _ := cmd.Flags().GetString("date")

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		Profile:    profile,
		DryRun:     dryRun,
		Dir:        dir,
		Date:       date,
	}, nil
}

// loadConfig reads the optional config file. Without one, every value comes from the
// process environment and the parameter store.
func (app *CLIApp) loadConfig(args *types.CLIArgs) (*types.Config, error) {
	if args.ConfigFile == "" {
		return &types.Config{Parameters: map[string]string{}, Environment: map[string]string{}}, nil
	}
	cfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}
	return cfg, nil
}

// runReport executa o relatório de custos.
func (app *CLIApp) runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	args, err := parseArgs(cmd)
	if err != nil {
		return err
	}
	cfg, err := app.loadConfig(args)
	if err != nil {
		return err
	}
	env, err := config.LoadReportEnv(cfg.Environment)
	if err != nil {
		return err
	}

	opts := usecase.ReportOptions{}
	if args.Date != "" {
		date, err := time.Parse(entity.DateLayout, args.Date)
		if err != nil {
			return fmt.Errorf("%w: invalid --date %q: %w", types.ErrConfiguration, args.Date, err)
		}
		opts.Date = date
	}

	clients := awsadapter.NewClientProvider(args.Profile, env.SESRegion)
	uc, err := app.reportUseCase(ctx, clients, env, cfg, args)
	if err != nil {
		return err
	}

	status := app.console.Status("Generating cost report...")
	result, err := uc.Run(ctx, env, opts)
	status.Stop()
	if err != nil {
		return err
	}

	app.displayReport(result)
	if args.DryRun {
		app.console.LogSuccess("Dry run: report written to %s", args.Dir)
	}
	return nil
}

// reportUseCase wires the report. Parameters from the config file replace the
// parameter store, and a dry run keeps everything on disk.
func (app *CLIApp) reportUseCase(ctx context.Context, clients *awsadapter.ClientProvider, env types.ReportEnv, cfg *types.Config, args *types.CLIArgs) (*usecase.ReportUseCase, error) {
	if !args.DryRun && len(cfg.Parameters) == 0 {
		return handler.BuildReportUseCase(ctx, clients, env, app.console)
	}

	costRepo, err := clients.CostRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}

	var paramRepo repository.ParameterRepository = config.NewFileParameterRepository(cfg)
	if len(cfg.Parameters) == 0 {
		ssmRepo, err := clients.SSMRepository(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		paramRepo = ssmRepo
	}

	var (
		archiveRepo repository.ArchiveRepository
		mailRepo    repository.MailRepository
		metricsRepo repository.MetricsRepository
	)
	if args.DryRun {
		archiveRepo = export.NewLocalArchive(args.Dir)
		mailRepo = export.NewLocalMailbox(args.Dir)
	} else {
		s3Repo, err := clients.ArchiveRepository(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		sesRepo, err := clients.MailRepository(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		cwRepo, err := clients.MetricsRepository(ctx, env.MetricsNamespace, env.EnableMetrics)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		archiveRepo, mailRepo, metricsRepo = s3Repo, sesRepo, cwRepo
	}

	var budgetRepo repository.BudgetRepository
	if env.BudgetName != "" {
		b, err := clients.BudgetRepository(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		budgetRepo = b
	}

	return usecase.NewReportUseCase(costRepo, budgetRepo, paramRepo, archiveRepo, mailRepo, metricsRepo, app.exportRepo, app.console), nil
}

// displayReport mostra o resumo do relatório no terminal.
func (app *CLIApp) displayReport(result entity.ReportResult) {
	doc := result.Document
	if doc == nil {
		return
	}

	app.console.Println(costTable(app.console, doc.Yesterday).Render())
	if doc.MonthToDate != nil {
		app.console.Println(costTable(app.console, *doc.MonthToDate).Render())
	}
	if doc.Trend != nil {
		app.console.DisplayTrendBars(trendCosts(doc.Trend.Points))
	}

	app.console.LogInfo("Archive: %s", result.ArchivePrefix)
	app.console.LogSuccess("Report for %s delivered (message id %s)", result.Date, result.MessageID)
}

// costTable builds a console table with every visible row and the section total.
func costTable(c types.ConsoleInterface, s entity.CostSection) types.TableInterface {
	table := c.CreateTable()
	table.AddColumn(s.Title)
	table.AddColumn("Amount")
	if len(s.Rows) == 0 {
		table.AddRow("No charges", report.FormatMoney(s.Total))
	}
	for _, row := range s.Rows {
		table.AddRow(row.Label, report.FormatMoney(row.Amount))
	}
	if s.Hidden > 0 {
		table.AddRow(fmt.Sprintf("%d more not shown", s.Hidden), "")
	}
	table.AddRow("Total", report.FormatMoney(s.Total))
	return table
}

func trendCosts(points []entity.TrendPoint) []types.DailyCost {
	out := make([]types.DailyCost, len(points))
	for i, p := range points {
		out[i] = types.DailyCost{Day: p.Date.Format(entity.DateLayout), Cost: p.Amount.InexactFloat64()}
	}
	return out
}

// runRemediate inicia a automação de remediação.
func (app *CLIApp) runRemediate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	args, err := parseArgs(cmd)
	if err != nil {
		return err
	}
	cfg, err := app.loadConfig(args)
	if err != nil {
		return err
	}
	env, err := config.LoadRemediationEnv(cfg.Environment)
	if err != nil {
		return err
	}

	clients := awsadapter.NewClientProvider(args.Profile, "")

	if args.DryRun {
		ec2Repo, err := clients.InstanceRepository(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		instances, err := ec2Repo.ListTaggedInstances(ctx, env.TagKey, env.TagValue)
		if err != nil {
			return err
		}
		app.console.Println(instanceTable(app.console, instances).Render())
		app.console.LogWarning("Dry run: %s was not started (%d instances tagged %s=%s)", env.DocumentName, len(instances), env.TagKey, env.TagValue)
		return nil
	}

	uc, err := handler.BuildRemediationUseCase(ctx, clients, env, app.console)
	if err != nil {
		return err
	}
	result, err := uc.Trigger(ctx, env, json.RawMessage(`{"source":"aws-alerting-cli"}`))
	if err != nil {
		return err
	}
	app.console.LogSuccess("Automation execution id: %s", result.AutomationExecutionID)
	return nil
}

func instanceTable(c types.ConsoleInterface, instances []entity.TaggedInstance) types.TableInterface {
	table := c.CreateTable()
	table.AddColumn("Instance")
	table.AddColumn("State")
	table.AddColumn("Name")
	for _, inst := range instances {
		table.AddRow(inst.InstanceID, inst.State, inst.Name)
	}
	return table
}
