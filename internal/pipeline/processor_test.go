package pipeline

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalahu/EnergyZ/constants"
	"github.com/zalahu/EnergyZ/internal/common"
	"github.com/zalahu/EnergyZ/internal/entity"
	"github.com/zalahu/EnergyZ/internal/extract"
	"github.com/zalahu/EnergyZ/internal/llm"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(_ context.Context, _ string) (extract.TextExtractionResult, error) {
	if f.err != nil {
		return extract.TextExtractionResult{}, f.err
	}
	return extract.TextExtractionResult{Text: f.text, Pages: 1, Format: constants.TXT}, nil
}

type fakeFieldExtractor struct {
	raw []byte
	err error
}

func (f fakeFieldExtractor) ExtractFields(_ context.Context, _ llm.ExtractRequest) ([]byte, error) {
	return f.raw, f.err
}

type fakeRepo struct {
	saved  entity.FieldMap
	nextID int64
	err    error
}

func (f *fakeRepo) SaveExtraction(_ context.Context, fields entity.FieldMap) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = fields
	if f.nextID == 0 {
		f.nextID = 1
	}
	return f.nextID, nil
}

func (f *fakeRepo) GetProject(context.Context, int64) (*entity.Project, error) { return nil, nil }
func (f *fakeRepo) GetFinancial(context.Context, int64) (*entity.FinancialData, error) {
	return nil, nil
}
func (f *fakeRepo) GetEnvironmental(context.Context, int64) (*entity.EnvironmentalData, error) {
	return nil, nil
}
func (f *fakeRepo) ListRecords(context.Context) ([]*entity.ProjectRecord, error) { return nil, nil }

type reviewerFunc func(ctx context.Context, fields entity.FieldMap) (entity.FieldMap, error)

func (f reviewerFunc) Review(ctx context.Context, fields entity.FieldMap) (entity.FieldMap, error) {
	return f(ctx, fields)
}

func newTestProcessor(t *testing.T, ex extract.TextExtractor, fe llm.FieldExtractor, rv Reviewer, repo *fakeRepo) *Processor {
	t.Helper()
	return NewProcessor(nil, Config{ArtifactCacheDir: t.TempDir()}, ex, fe, rv, repo)
}

func TestProcessDocumentHappyPath(t *testing.T) {
	repo := &fakeRepo{nextID: 42}
	p := newTestProcessor(t,
		fakeExtractor{text: "Project Name: Solar Farm"},
		fakeFieldExtractor{raw: []byte(`{"Project Name": "Solar Farm", "Status": "Active", "Capex": 5000000}`)},
		nil, repo)

	res, err := p.ProcessDocument(context.Background(), "solar.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.ProjectID)
	assert.False(t, res.NeedsReview)
	assert.NotEqual(t, "", res.DocumentID.String())
	require.NotNil(t, repo.saved)
	assert.Equal(t, "Solar Farm", repo.saved[constants.FieldProjectName])
}

func TestProcessDocumentReviewerEditIsPersisted(t *testing.T) {
	repo := &fakeRepo{}
	rv := reviewerFunc(func(_ context.Context, fields entity.FieldMap) (entity.FieldMap, error) {
		fields[constants.FieldProjectName] = "Solar Farm (corrected)"
		return fields, nil
	})
	p := newTestProcessor(t,
		fakeExtractor{text: "doc"},
		fakeFieldExtractor{raw: []byte(`{"Project Name": "Solar Farm"}`)},
		rv, repo)

	res, err := p.ProcessDocument(context.Background(), "doc.txt")
	require.NoError(t, err)
	assert.Equal(t, "Solar Farm (corrected)", repo.saved[constants.FieldProjectName])
	// the pre-review extraction stays intact alongside the operator's edit
	assert.Equal(t, "Solar Farm", res.Fields[constants.FieldProjectName])
}

func TestProcessDocumentReviewAbort(t *testing.T) {
	repo := &fakeRepo{}
	rv := reviewerFunc(func(context.Context, entity.FieldMap) (entity.FieldMap, error) {
		return nil, ErrReviewAborted
	})
	p := newTestProcessor(t,
		fakeExtractor{text: "doc"},
		fakeFieldExtractor{raw: []byte(`{"Project Name": "Solar Farm"}`)},
		rv, repo)

	res, err := p.ProcessDocument(context.Background(), "doc.txt")
	require.ErrorIs(t, err, ErrReviewAborted)
	assert.Nil(t, repo.saved)
	assert.Zero(t, res.ProjectID)
	assert.Equal(t, "Solar Farm", res.Fields[constants.FieldProjectName])
}

func TestProcessDocumentParseFailureKeepsRawArtifact(t *testing.T) {
	repo := &fakeRepo{}
	raw := []byte(`{'Project Name': 'Solar Farm'}`)
	p := newTestProcessor(t,
		fakeExtractor{text: "doc"},
		fakeFieldExtractor{raw: raw},
		nil, repo)

	res, err := p.ProcessDocument(context.Background(), "doc.txt")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindParse))
	assert.Nil(t, repo.saved)

	require.NotEmpty(t, res.RawResponsePath)
	kept, readErr := os.ReadFile(res.RawResponsePath)
	require.NoError(t, readErr)
	assert.Equal(t, raw, kept)
}

func TestProcessDocumentExtractionFailure(t *testing.T) {
	repo := &fakeRepo{}
	p := newTestProcessor(t,
		fakeExtractor{err: common.NewExtractionError("boom", nil)},
		fakeFieldExtractor{},
		nil, repo)

	_, err := p.ProcessDocument(context.Background(), "doc.pdf")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindExtraction))
	assert.Nil(t, repo.saved)
}

func TestProcessDocumentEmptyTextFails(t *testing.T) {
	repo := &fakeRepo{}
	p := newTestProcessor(t, fakeExtractor{text: ""}, fakeFieldExtractor{}, nil, repo)

	_, err := p.ProcessDocument(context.Background(), "blank.txt")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindExtraction))
	assert.Nil(t, repo.saved)
}

func TestProcessDocumentLLMFailure(t *testing.T) {
	repo := &fakeRepo{}
	p := newTestProcessor(t,
		fakeExtractor{text: "doc"},
		fakeFieldExtractor{err: common.NewServiceError("unreachable", nil)},
		nil, repo)

	_, err := p.ProcessDocument(context.Background(), "doc.txt")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindService))
	assert.Nil(t, repo.saved)
}

func TestProcessDocumentPersistenceFailure(t *testing.T) {
	repo := &fakeRepo{err: common.NewPersistenceError("disk full", nil)}
	p := newTestProcessor(t,
		fakeExtractor{text: "doc"},
		fakeFieldExtractor{raw: []byte(`{"Project Name": "Solar Farm"}`)},
		nil, repo)

	res, err := p.ProcessDocument(context.Background(), "doc.txt")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindPersistence))
	assert.Zero(t, res.ProjectID)
}

func TestNeedsReview(t *testing.T) {
	assert.True(t, needsReview(entity.FieldMap{}))
	assert.True(t, needsReview(entity.FieldMap{
		constants.FieldProjectName: "X",
		constants.FieldStatus:      "In Limbo",
	}))
	assert.False(t, needsReview(entity.FieldMap{
		constants.FieldProjectName: "X",
		constants.FieldStatus:      "Active",
	}))
	assert.False(t, needsReview(entity.FieldMap{constants.FieldProjectName: "X"}))
}
