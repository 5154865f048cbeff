package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"recipehub/entities"
	"recipehub/internal/metrics"
	"recipehub/internal/utils"
	"recipehub/internal/utils/logger"
	"recipehub/pkg/recipe"
	"recipehub/pkg/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const (
	AnonymousUsername = "Anonymous"
	AnonymousEmail    = "anonymous@example.com"

	untitledRecipe  = "Untitled Recipe"
	defaultClock    = "00:30:00"
	progressEvery   = 100
	maxClockMinutes = 24 * 60
)

// Column names of the import file.
const (
	ColName                = "name"
	ColDescription         = "description"
	ColIngredientsName     = "ingredients_name"
	ColIngredientsQuantity = "ingredients_quantity"
	ColInstructions        = "instructions"
	ColCuisine             = "cuisine"
	ColCourse              = "course"
	ColDiet                = "diet"
	ColPrepTime            = "prep_time (in mins)"
	ColCookTime            = "cook_time (in mins)"
	ColImageURL            = "image_url"
)

type (
	Options struct {
		// StartRow is the 0-based data row (header excluded) to resume from.
		StartRow int
	}

	RowError struct {
		Row int
		Err error
	}

	Summary struct {
		Imported int
		Skipped  int
		Failed   int
		// LastRow is the number of data rows consumed, usable as the next StartRow.
		LastRow int
		Errors  []RowError
	}

	Importer struct {
		userRepository   user.UserRepository
		recipeRepository recipe.RecipeRepository
		now              func() time.Time
		location         *time.Location
		log              zerolog.Logger
	}
)

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

func NewImporter(userRepository user.UserRepository, recipeRepository recipe.RecipeRepository, location *time.Location) *Importer {
	return &Importer{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
		now:              time.Now,
		location:         location,
		log:              logger.Component("importer"),
	}
}

// Run imports every data row from opts.StartRow on. Row failures are
// collected in the summary; only setup failures and cancellation abort.
func (im *Importer) Run(ctx context.Context, r io.Reader, opts Options) (Summary, error) {
	var summary Summary

	owner, err := im.anonymousUser(ctx)
	if err != nil {
		return summary, fmt.Errorf("prepare %s user: %w", AnonymousUsername, err)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return summary, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	today := utils.CalendarDate(im.now(), im.location)

	for row := 0; ; row++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if row < opts.StartRow {
			summary.LastRow = row + 1
			continue
		}
		summary.LastRow = row + 1

		if err != nil {
			im.fail(&summary, row, err)
			continue
		}

		imported, err := im.importRow(ctx, rowValues{columns: columns, record: record}, owner, today)
		switch {
		case err != nil:
			im.fail(&summary, row, err)
		case imported:
			summary.Imported++
			metrics.ImportedRows.WithLabelValues("imported").Inc()
			if summary.Imported%progressEvery == 0 {
				im.log.Info().Int("imported", summary.Imported).Int("row", row).Msg("import progress")
			}
		default:
			summary.Skipped++
			metrics.ImportedRows.WithLabelValues("skipped").Inc()
		}
	}

	im.log.Info().
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int("last_row", summary.LastRow).
		Msg("import finished")
	return summary, nil
}

func (im *Importer) fail(summary *Summary, row int, err error) {
	summary.Failed++
	summary.Errors = append(summary.Errors, RowError{Row: row, Err: err})
	metrics.ImportedRows.WithLabelValues("failed").Inc()
	im.log.Warn().Err(err).Int("row", row).Msg("import row failed")
}

func (im *Importer) anonymousUser(ctx context.Context) (*entities.User, error) {
	password, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	owner := &entities.User{
		ID:       uuid.New(),
		Username: AnonymousUsername,
		Email:    AnonymousEmail,
		Password: string(password),
		RegDate:  utils.CalendarDate(im.now(), im.location),
	}
	if err := im.userRepository.GetOrCreateByUsername(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

type rowValues struct {
	columns map[string]int
	record  []string
}

func (v rowValues) get(column string) (string, bool) {
	i, ok := v.columns[column]
	if !ok || i >= len(v.record) {
		return "", false
	}
	return strings.TrimSpace(v.record[i]), true
}

func (v rowValues) value(column string) string {
	s, _ := v.get(column)
	return s
}

func (im *Importer) importRow(ctx context.Context, row rowValues, owner *entities.User, today time.Time) (bool, error) {
	title := row.value(ColName)
	if title == "" {
		title = untitledRecipe
	}

	exists, err := im.recipeRepository.ExistsByTitle(ctx, title)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	prep, _ := row.get(ColPrepTime)
	cook, _ := row.get(ColCookTime)

	rec := entities.Recipe{
		ID:           uuid.New(),
		UserID:       owner.ID,
		Title:        title,
		Description:  row.value(ColDescription),
		Ingredients:  datatypes.JSONSlice[string](BuildIngredients(row.value(ColIngredientsName), row.value(ColIngredientsQuantity))),
		Instructions: datatypes.JSONSlice[string](SplitInstructions(row.value(ColInstructions))),
		Cuisine:      row.value(ColCuisine),
		Course:       row.value(ColCourse),
		Diet:         row.value(ColDiet),
		PrepTime:     MinutesToClock(prep),
		CookTime:     MinutesToClock(cook),
		UploadDate:   today,
		Image:        row.value(ColImageURL),
	}

	if err := im.recipeRepository.CreateRecipe(ctx, &rec); err != nil {
		return false, err
	}
	return true, nil
}

// MinutesToClock renders a minute count as HH:MM:00. An empty value is zero,
// a value that is not a number falls back to 00:30:00, and anything from a
// full day upwards is clamped to 23:59:00.
func MinutesToClock(value string) string {
	if value == "" {
		return "00:00:00"
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return defaultClock
	}
	minutes := int(f)
	if minutes >= maxClockMinutes {
		return "23:59:00"
	}
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// BuildIngredients pairs comma-separated quantities with names as
// "quantity name". Without quantities the names are used alone.
func BuildIngredients(names, quantities string) []string {
	nameItems := splitTrim(names, ",")
	if quantities == "" {
		return nameItems
	}
	qtyItems := splitTrim(quantities, ",")

	n := min(len(nameItems), len(qtyItems))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, strings.TrimSpace(qtyItems[i]+" "+nameItems[i]))
	}
	return out
}

// SplitInstructions breaks instructions into one step per non-empty line.
func SplitInstructions(text string) []string {
	return splitTrim(text, "\n")
}

func splitTrim(s, sep string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
