package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/model"
	"github.com/kofiasare/pasco/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var requiredImportColumns = []string{
	"exam_level_code",
	"subject_code",
	"paper_year",
	"paper_number",
	"question_number",
	"stem",
	"correct_option",
}

var optionColumnPattern = regexp.MustCompile(`^option_([a-z])$`)

// ImportService ingests questions from CSV uploads. Failures are isolated per
// row: a bad row is recorded and skipped, the rest of the file still lands.
type ImportService interface {
	ImportQuestions(r io.Reader, filename string, userID *uuid.UUID) (*dto.ImportReportDTO, error)
	PreviewImport(r io.Reader, filename string) (*dto.ImportReportDTO, error)
}

type importService struct {
	catalogRepo  repository.CatalogRepository
	questionRepo repository.QuestionRepository
	importRepo   repository.ImportRepository
}

func NewImportService(catalogRepo repository.CatalogRepository, questionRepo repository.QuestionRepository, importRepo repository.ImportRepository) ImportService {
	return &importService{catalogRepo: catalogRepo, questionRepo: questionRepo, importRepo: importRepo}
}

func (s *importService) ImportQuestions(r io.Reader, filename string, userID *uuid.UUID) (*dto.ImportReportDTO, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return nil, err
	}
	return s.processRows(rows, filename, userID, false)
}

func (s *importService) PreviewImport(r io.Reader, filename string) (*dto.ImportReportDTO, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return nil, err
	}
	return s.processRows(rows, filename, nil, true)
}

// parseCSV reads a headered CSV into one map per row.
func parseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: no rows found in the uploaded file", apperr.ErrInvalidArgument)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed CSV: %v", apperr.ErrInvalidArgument, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows found in the uploaded file", apperr.ErrInvalidArgument)
	}
	return rows, nil
}

type importCache struct {
	examLevels map[string]uint
	subjects   map[string]uint
	topics     map[uint]map[string]uint
}

func (s *importService) processRows(rows []map[string]string, filename string, userID *uuid.UUID, preview bool) (*dto.ImportReportDTO, error) {
	cache := &importCache{
		examLevels: make(map[string]uint),
		subjects:   make(map[string]uint),
		topics:     make(map[uint]map[string]uint),
	}

	var imp *model.Import
	if !preview {
		imp = &model.Import{
			UserID:           userID,
			Source:           "csv",
			OriginalFilename: filename,
			Status:           model.ImportStatusProcessing,
			TotalRows:        len(rows),
		}
		if err := s.importRepo.Create(imp); err != nil {
			return nil, fmt.Errorf("recording import: %w", err)
		}
	}

	report := &dto.ImportReportDTO{Filename: filename, TotalRows: len(rows), Errors: []dto.ImportRowErrorDTO{}}
	for index, row := range rows {
		rowNumber := index + 2 // header row is 1
		if err := s.processRow(cache, row, preview); err != nil {
			report.Errors = append(report.Errors, dto.ImportRowErrorDTO{RowNumber: rowNumber, Message: err.Error()})
			if imp != nil {
				if logErr := s.importRepo.AddError(imp.ID, rowNumber, err.Error()); logErr != nil {
					log.Error().Err(logErr).Int("row", rowNumber).Msg("Import: failed to record row error")
				}
			}
			continue
		}
		report.SuccessCount++
	}
	report.ErrorCount = len(report.Errors)

	if imp != nil {
		now := time.Now()
		imp.ProcessedRows = len(rows)
		imp.SuccessfulRows = report.SuccessCount
		imp.CompletedAt = &now
		imp.Status = model.ImportStatusCompleted
		if report.ErrorCount > 0 {
			imp.Status = model.ImportStatusCompletedWithErrors
		}
		if err := s.importRepo.Update(imp); err != nil {
			return nil, fmt.Errorf("finalizing import record: %w", err)
		}
		report.ImportID = &imp.ID
	}

	log.Info().Str("filename", filename).Int("rows", report.TotalRows).
		Int("ok", report.SuccessCount).Int("failed", report.ErrorCount).
		Bool("preview", preview).Msg("CSV import processed")
	return report, nil
}

func (s *importService) processRow(cache *importCache, row map[string]string, preview bool) error {
	for _, col := range requiredImportColumns {
		if row[col] == "" {
			return fmt.Errorf("%s is required", col)
		}
	}

	examLevelID, err := s.resolveExamLevel(cache, row["exam_level_code"])
	if err != nil {
		return err
	}
	subjectID, err := s.resolveSubject(cache, examLevelID, row["subject_code"])
	if err != nil {
		return err
	}

	year, err := parseIntField(row["paper_year"], "paper_year")
	if err != nil {
		return err
	}
	paperNumber, err := parseIntField(row["paper_number"], "paper_number")
	if err != nil {
		return err
	}
	questionNumber, err := parseIntField(row["question_number"], "question_number")
	if err != nil {
		return err
	}

	paperID, err := s.resolvePaper(subjectID, year, paperNumber, !preview)
	if err != nil {
		return err
	}

	options, err := parseRowOptions(row)
	if err != nil {
		return err
	}
	topicIDs, err := s.resolveTopics(cache, subjectID, row["topic_codes"])
	if err != nil {
		return err
	}

	exists, err := s.questionRepo.ExistsByPaperAndNumber(paperID, questionNumber)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("question already exists for this paper and question_number")
	}
	if preview {
		return nil
	}

	question := model.Question{
		PaperID:        paperID,
		QuestionNumber: questionNumber,
		Stem:           row["stem"],
		Explanation:    row["explanation"],
		Topic:          row["topic"],
		Difficulty:     row["difficulty"],
		Options:        options,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		return fmt.Errorf("creating question: %v", err)
	}
	if len(topicIDs) > 0 {
		if err := s.questionRepo.ReplaceTopics(question.ID, topicIDs); err != nil {
			return fmt.Errorf("linking topics: %v", err)
		}
	}
	return nil
}

func (s *importService) resolveExamLevel(cache *importCache, code string) (uint, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if id, ok := cache.examLevels[normalized]; ok {
		return id, nil
	}
	level, err := s.catalogRepo.FindExamLevelByCode(normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("exam level code '%s' not found", normalized)
		}
		return 0, err
	}
	cache.examLevels[normalized] = level.ID
	return level.ID, nil
}

func (s *importService) resolveSubject(cache *importCache, examLevelID uint, code string) (uint, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	cacheKey := fmt.Sprintf("%d:%s", examLevelID, normalized)
	if id, ok := cache.subjects[cacheKey]; ok {
		return id, nil
	}
	subject, err := s.catalogRepo.FindSubjectByCode(examLevelID, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("subject code '%s' not found for exam level", normalized)
		}
		return 0, err
	}
	cache.subjects[cacheKey] = subject.ID
	return subject.ID, nil
}

func (s *importService) resolvePaper(subjectID uint, year, paperNumber int, createIfMissing bool) (uint, error) {
	paper, err := s.catalogRepo.FindPaperByNumber(subjectID, year, paperNumber)
	if err == nil {
		return paper.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if !createIfMissing {
		return 0, fmt.Errorf("paper for year %d number %d does not exist for this subject", year, paperNumber)
	}
	created := model.Paper{SubjectID: subjectID, Year: year, PaperNumber: paperNumber}
	if err := s.catalogRepo.CreatePaper(&created); err != nil {
		return 0, fmt.Errorf("creating paper: %v", err)
	}
	return created.ID, nil
}

func (s *importService) resolveTopics(cache *importCache, subjectID uint, raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	refs := strings.Split(raw, ",")

	topicMap, ok := cache.topics[subjectID]
	if !ok {
		topics, err := s.catalogRepo.TopicsBySubject(subjectID)
		if err != nil {
			return nil, err
		}
		topicMap = make(map[string]uint, len(topics)*2)
		for _, topic := range topics {
			if topic.Code != "" {
				topicMap[strings.ToUpper(topic.Code)] = topic.ID
			}
			topicMap[strings.ToLower(topic.Name)] = topic.ID
		}
		cache.topics[subjectID] = topicMap
	}

	var resolved []uint
	seen := make(map[uint]bool)
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		id, ok := topicMap[strings.ToUpper(ref)]
		if !ok {
			id, ok = topicMap[strings.ToLower(ref)]
		}
		if ok && !seen[id] {
			seen[id] = true
			resolved = append(resolved, id)
		}
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("topics '%s' not found for subject", strings.TrimSpace(raw))
	}
	return resolved, nil
}

// parseRowOptions collects option_a..option_z columns and marks the one named
// by correct_option; exactly one match is required.
func parseRowOptions(row map[string]string) ([]model.AnswerOption, error) {
	var options []model.AnswerOption
	for key, value := range row {
		match := optionColumnPattern.FindStringSubmatch(key)
		if match == nil || value == "" {
			continue
		}
		options = append(options, model.AnswerOption{
			Label: strings.ToUpper(match[1]),
			Text:  value,
		})
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("at least one option (option_a, option_b, ...) is required")
	}

	correctLabel := strings.ToUpper(strings.TrimSpace(row["correct_option"]))
	correctCount := 0
	for i := range options {
		if options[i].Label == correctLabel {
			options[i].IsCorrect = true
			correctCount++
		}
	}
	if correctCount != 1 {
		return nil, fmt.Errorf("correct_option must match exactly one provided option label")
	}
	return options, nil
}

func parseIntField(value, field string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return parsed, nil
}
