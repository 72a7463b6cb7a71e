package progress

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/coursebridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
)

func TestEnrollmentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewEnrollmentRepo(db, testutil.Logger(t))
	seeded := testutil.SeedCourseTree(t, ctx, tx, "creator", 1, 1)
	learner := testutil.ID("learner")

	if ok, err := repo.Exists(dbc, learner, seeded.Course.ID); err != nil || ok {
		t.Fatalf("Exists before: ok=%v err=%v", ok, err)
	}
	if created, err := repo.Ensure(dbc, learner, seeded.Course.ID); err != nil || !created {
		t.Fatalf("Ensure: created=%v err=%v", created, err)
	}
	if created, err := repo.Ensure(dbc, learner, seeded.Course.ID); err != nil || created {
		t.Fatalf("Ensure duplicate: created=%v err=%v", created, err)
	}
	if ok, err := repo.Exists(dbc, learner, seeded.Course.ID); err != nil || !ok {
		t.Fatalf("Exists after: ok=%v err=%v", ok, err)
	}
	if row, err := repo.LockForUpdate(dbc, learner, seeded.Course.ID); err != nil || row.LearnerID != learner {
		t.Fatalf("LockForUpdate: row=%+v err=%v", row, err)
	}
	if _, err := repo.LockForUpdate(dbctx.New(ctx), learner, seeded.Course.ID); err == nil {
		t.Fatalf("expected LockForUpdate to require a tx")
	}

	ids, err := repo.ListLearnerIDs(dbc, seeded.Course.ID)
	if err != nil || len(ids) != 1 || ids[0] != learner {
		t.Fatalf("ListLearnerIDs: err=%v ids=%v", err, ids)
	}
	testutil.SeedEnrollment(t, ctx, tx, testutil.ID("other"), seeded.Course.ID)
	if n, err := repo.CountByCourse(dbc, seeded.Course.ID); err != nil || n != 2 {
		t.Fatalf("CountByCourse: err=%v n=%d", err, n)
	}
	if n, err := repo.CountByCourse(dbc, uuid.New()); err != nil || n != 0 {
		t.Fatalf("CountByCourse unknown course: err=%v n=%d", err, n)
	}

	testutil.SeedModuleCompletion(t, ctx, tx, learner, seeded.Modules[0].ID)
	enrolled, err := repo.ListEnrolledCourses(dbc, learner)
	if err != nil || len(enrolled) != 1 {
		t.Fatalf("ListEnrolledCourses: err=%v len=%d", err, len(enrolled))
	}
	if enrolled[0].TotalModules != 2 || enrolled[0].CompletedModules != 1 || enrolled[0].Title != "course" {
		t.Fatalf("enrolled course: %+v", enrolled[0])
	}
	if n, err := repo.CountAll(dbc); err != nil || n != 2 {
		t.Fatalf("CountAll: err=%v n=%d", err, n)
	}
}

func TestCompletionReposAreInsertOnly(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	lessons := NewLessonCompletionRepo(db, log)
	modules := NewModuleCompletionRepo(db, log)
	courses := NewCourseCompletionRepo(db, log)

	seeded := testutil.SeedCourseTree(t, ctx, tx, "creator", 2, 1)
	learner := testutil.ID("learner")
	l0 := seeded.Lessons[0][0].ID

	if created, err := lessons.Create(dbc, learner, l0); err != nil || !created {
		t.Fatalf("lesson Create: created=%v err=%v", created, err)
	}
	if created, err := lessons.Create(dbc, learner, l0); err != nil || created {
		t.Fatalf("lesson Create duplicate: created=%v err=%v", created, err)
	}
	if _, err := lessons.Create(dbc, learner, seeded.Lessons[1][0].ID); err != nil {
		t.Fatalf("lesson Create second module: %v", err)
	}
	if n, err := lessons.CountByModule(dbc, learner, seeded.Modules[0].ID); err != nil || n != 1 {
		t.Fatalf("CountByModule: err=%v n=%d", err, n)
	}
	ids, err := lessons.ListLessonIDsByCourse(dbc, learner, seeded.Course.ID)
	if err != nil || len(ids) != 2 || ids[0] != l0 {
		t.Fatalf("ListLessonIDsByCourse: err=%v ids=%v", err, ids)
	}

	if created, err := modules.Create(dbc, learner, seeded.Modules[1].ID); err != nil || !created {
		t.Fatalf("module Create: created=%v err=%v", created, err)
	}
	if created, err := modules.Create(dbc, learner, seeded.Modules[1].ID); err != nil || created {
		t.Fatalf("module Create duplicate: created=%v err=%v", created, err)
	}
	if n, err := modules.CountByCourse(dbc, learner, seeded.Course.ID); err != nil || n != 1 {
		t.Fatalf("module CountByCourse: err=%v n=%d", err, n)
	}

	if created, err := courses.Create(dbc, learner, seeded.Course.ID); err != nil || !created {
		t.Fatalf("course Create: created=%v err=%v", created, err)
	}
	if created, err := courses.Create(dbc, learner, seeded.Course.ID); err != nil || created {
		t.Fatalf("course Create duplicate: created=%v err=%v", created, err)
	}
	if n, err := courses.CountByCourse(dbc, seeded.Course.ID); err != nil || n != 1 {
		t.Fatalf("course CountByCourse: err=%v n=%d", err, n)
	}
}

func TestQuizCompletionUpsertOverwrites(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewQuizCompletionRepo(db, testutil.Logger(t))
	seeded := testutil.SeedCourseTree(t, ctx, tx, "creator", 1)
	quiz := testutil.SeedQuiz(t, ctx, tx, seeded.Modules[0].ID, 3)
	learner := testutil.ID("learner")

	if err := repo.Upsert(dbc, &types.QuizCompletion{LearnerID: learner, QuizID: quiz.ID, Score: 1, TotalQuestions: 3}); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	qid := uuid.New()
	aid := uuid.New()
	answers, err := EncodeAnswers(map[uuid.UUID]uuid.UUID{qid: aid})
	if err != nil {
		t.Fatalf("EncodeAnswers: %v", err)
	}
	if err := repo.Upsert(dbc, &types.QuizCompletion{LearnerID: learner, QuizID: quiz.ID, Score: 3, TotalQuestions: 3, Answers: answers}); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	var n int64
	if err := tx.Model(&types.QuizCompletion{}).Where("learner_id = ? AND quiz_id = ?", learner, quiz.ID).Count(&n).Error; err != nil || n != 1 {
		t.Fatalf("quiz completion rows: err=%v n=%d", err, n)
	}
	var got types.QuizCompletion
	if err := tx.Where("learner_id = ? AND quiz_id = ?", learner, quiz.ID).Take(&got).Error; err != nil || got.Score != 3 {
		t.Fatalf("stored row: row=%+v err=%v", got, err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(got.Answers, &decoded); err != nil || decoded[qid.String()] != aid.String() {
		t.Fatalf("answers snapshot: %s err=%v", string(got.Answers), err)
	}

	ids, err := repo.ListQuizIDsByCourse(dbc, learner, seeded.Course.ID)
	if err != nil || len(ids) != 1 || ids[0] != quiz.ID {
		t.Fatalf("ListQuizIDsByCourse: err=%v ids=%v", err, ids)
	}
}

func TestProgressRowsFanOut(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewProgressRowsRepo(db, testutil.Logger(t))
	seeded := testutil.SeedCourseTree(t, ctx, tx, "creator", 3, 0)
	testutil.SeedQuiz(t, ctx, tx, seeded.Modules[0].ID, 1)
	learner := testutil.ID("learner")
	testutil.SeedEnrollment(t, ctx, tx, learner, seeded.Course.ID)
	testutil.SeedLessonCompletion(t, ctx, tx, learner, seeded.Lessons[0][1].ID)

	rows, err := repo.ListByLearner(dbc, learner)
	if err != nil {
		t.Fatalf("ListByLearner: %v", err)
	}
	// Three lesson rows for the first module plus one lesson-less row for the empty module.
	if len(rows) != 4 {
		t.Fatalf("rows: want=4 got=%d", len(rows))
	}
	completed := 0
	for _, r := range rows {
		if r.CourseID != seeded.Course.ID || r.CourseTitle != "course" {
			t.Fatalf("unexpected row course: %+v", r)
		}
		if r.CompletedLessonID != nil {
			completed++
		}
	}
	if completed != 1 {
		t.Fatalf("completed lesson rows: want=1 got=%d", completed)
	}

	if none, err := repo.ListByLearner(dbc, "nobody"); err != nil || len(none) != 0 {
		t.Fatalf("ListByLearner unknown learner: err=%v len=%d", err, len(none))
	}
}
