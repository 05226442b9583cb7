package options

import (
	"os"

	"retoken/internal/rotator/cli/confirm"
	"retoken/internal/rotator/cli/streams"
	"retoken/internal/rotator/models"
	"retoken/internal/rotator/usecase"
)

// Option type is a value wrapper with a flag indicating whether its value has been modified.
type Option[T any] struct {
	Value   T
	Changed *bool
}

// RetokenOptions type is used to describe root command options.
type RetokenOptions struct {
	TTY           Option[bool]
	NoTTY         Option[bool]
	ConfigPath    string
	DebugMode     bool
	CPUProfile    string
	MemoryProfile string
}

type CliOptions struct {
	useCase        usecase.UseCase
	confirm        confirm.Confirm
	in             *streams.In
	out            *streams.Out
	appConfig      *models.AppConfig
	retokenOptions *RetokenOptions
	version        string
	useTTY         bool
}

func NewCliOptions(useCase usecase.UseCase, version string) *CliOptions {
	return &CliOptions{
		useCase:        useCase,
		version:        version,
		in:             streams.NewIn(os.Stdin),
		out:            streams.NewOut(os.Stdout),
		appConfig:      &models.AppConfig{},
		retokenOptions: &RetokenOptions{},
	}
}

func (opts *CliOptions) UseCase() usecase.UseCase {
	return opts.useCase
}

func (opts *CliOptions) SetUseCase(useCase usecase.UseCase) {
	opts.useCase = useCase
}

func (opts *CliOptions) Confirm() confirm.Confirm {
	return opts.confirm
}

func (opts *CliOptions) SetConfirm(confirmFn confirm.Confirm) {
	opts.confirm = confirmFn
}

func (opts *CliOptions) In() *streams.In {
	return opts.in
}

func (opts *CliOptions) SetIn(in *streams.In) {
	opts.in = in
}

func (opts *CliOptions) Out() *streams.Out {
	return opts.out
}

func (opts *CliOptions) SetOut(out *streams.Out) {
	opts.out = out
}

func (opts *CliOptions) AppConfig() *models.AppConfig {
	return opts.appConfig
}

func (opts *CliOptions) SetAppConfig(appConfig *models.AppConfig) {
	opts.appConfig = appConfig
}

func (opts *CliOptions) RetokenOpts() *RetokenOptions {
	return opts.retokenOptions
}

func (opts *CliOptions) SetRetokenOpts(retokenOpts *RetokenOptions) {
	opts.retokenOptions = retokenOpts
}

func (opts *CliOptions) UseTTY() bool {
	return opts.useTTY
}

func (opts *CliOptions) SetUseTTY(useTTY bool) {
	opts.useTTY = useTTY
}

func (opts *CliOptions) Version() string {
	return opts.version
}

func (opts *CliOptions) SetVersion(version string) {
	opts.version = version
}

func (opts *CliOptions) DebugMode() bool {
	return opts.RetokenOpts().DebugMode
}

func (opts *CliOptions) SetDebugMode(debugMode bool) {
	opts.RetokenOpts().DebugMode = debugMode
}

func (opts *CliOptions) CPUProfile() string {
	return opts.RetokenOpts().CPUProfile
}

func (opts *CliOptions) SetCPUProfile(profile string) {
	opts.RetokenOpts().CPUProfile = profile
}

func (opts *CliOptions) MemoryProfile() string {
	return opts.RetokenOpts().MemoryProfile
}

func (opts *CliOptions) SetMemoryProfile(profile string) {
	opts.RetokenOpts().MemoryProfile = profile
}
