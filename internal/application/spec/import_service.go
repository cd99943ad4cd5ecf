package spec

import (
	"context"
	"errors"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/apitest/backend/internal/infrastructure/importer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportService persists parsed import sources as interfaces and
// normalized parameters. Re-importing the same source is safe:
// interfaces are matched by (project, name) and parameters upsert by
// (interface, name, location).
type ImportService struct {
	projectRepo spec.ProjectRepository
	ifaceRepo   spec.InterfaceRepository
	paramRepo   spec.ParameterRepository
	logger      *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(projectRepo spec.ProjectRepository, ifaceRepo spec.InterfaceRepository, paramRepo spec.ParameterRepository, logger *zap.Logger) *ImportService {
	return &ImportService{
		projectRepo: projectRepo,
		ifaceRepo:   ifaceRepo,
		paramRepo:   paramRepo,
		logger:      logger,
	}
}

// Import stores one parsed import source under a project. Per-parameter
// problems (unserializable leaves, malformed constraints) degrade to
// warnings; only store failures abort the import.
func (s *ImportService) Import(ctx context.Context, projectID uuid.UUID, parsed *importer.ParseResult, creatorID uuid.UUID) (*ImportReport, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PROJECT", "Project not found")
		}
		return nil, err
	}

	report := &ImportReport{ProjectID: projectID, Warnings: parsed.Warnings}

	for i := range parsed.Interfaces {
		src := &parsed.Interfaces[i]
		iface, err := s.upsertInterface(ctx, projectID, src)
		if err != nil {
			return nil, err
		}

		params, warnings := s.buildParameters(iface.ID, src)
		report.Warnings = append(report.Warnings, warnings...)

		if len(params) > 0 {
			if err := s.paramRepo.Upsert(ctx, params); err != nil {
				return nil, err
			}
		}
		report.Interfaces++
		report.Parameters += len(params)
	}

	s.logger.Info("Import completed",
		zap.String("project_id", projectID.String()),
		zap.String("creator_id", creatorID.String()),
		zap.Int("interfaces", report.Interfaces),
		zap.Int("parameters", report.Parameters),
		zap.Int("warnings", len(report.Warnings)),
	)
	return report, nil
}

func (s *ImportService) upsertInterface(ctx context.Context, projectID uuid.UUID, src *importer.ParsedInterface) (*spec.Interface, error) {
	iface, err := s.ifaceRepo.FindByProjectAndName(ctx, projectID, src.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if iface == nil {
		iface, err = spec.NewInterface(projectID, src.Name, src.URL, spec.ParseHTTPMethod(src.Method))
		if err != nil {
			return nil, err
		}
	} else {
		iface.URL = src.URL
		iface.Method = spec.ParseHTTPMethod(src.Method)
	}
	if len(src.DefaultHeaders) > 0 {
		if err := iface.SetDefaultHeaders(src.DefaultHeaders); err != nil {
			return nil, err
		}
	}
	if err := s.ifaceRepo.Save(ctx, iface); err != nil {
		return nil, err
	}
	return iface, nil
}

// buildParameters merges declared rows and normalized trees into the
// final parameter set for one interface.
func (s *ImportService) buildParameters(interfaceID uuid.UUID, src *importer.ParsedInterface) ([]spec.Parameter, []string) {
	var params []spec.Parameter
	var warnings []string

	for _, d := range src.Declared {
		constraint := d.Constraint
		if _, err := spec.ParseConstraint(constraint); err != nil {
			warnings = append(warnings, src.Name+": parameter "+d.Name+": "+err.Error()+", constraint dropped")
			constraint = ""
		}
		params = append(params, spec.Parameter{
			BaseEntity:   shared.NewBaseEntity(),
			InterfaceID:  interfaceID,
			Name:         d.Name,
			Location:     d.Location,
			DataType:     spec.ParseDataType(d.DataType),
			Required:     d.Required,
			ExampleValue: d.Example,
			Constraint:   constraint,
		})
	}

	for _, tagged := range src.Trees {
		normalized, normWarnings := spec.NormalizeTree(tagged.Tree, tagged.Location)
		for _, w := range normWarnings {
			warnings = append(warnings, src.Name+": "+w.String())
		}

		optional := make(map[string]struct{}, len(tagged.OptionalKeys))
		for _, key := range tagged.OptionalKeys {
			optional[key] = struct{}{}
		}
		for i := range normalized {
			normalized[i].BaseEntity = shared.NewBaseEntity()
			normalized[i].InterfaceID = interfaceID
			if _, ok := optional[normalized[i].Name]; ok {
				normalized[i].Required = false
			}
		}
		params = append(params, normalized...)
	}

	return params, warnings
}
