package learning

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/coursebridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursebridge-backend/internal/domain"
	"github.com/yungbote/coursebridge-backend/internal/platform/dbctx"
)

func TestCreatorAndLearnerEnsureIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	creators := NewCreatorRepo(db, testutil.Logger(t))
	learners := NewLearnerRepo(db, testutil.Logger(t))

	id := testutil.ID("creator")
	if created, err := creators.Ensure(dbc, id); err != nil || !created {
		t.Fatalf("first Ensure: created=%v err=%v", created, err)
	}
	if created, err := creators.Ensure(dbc, id); err != nil || created {
		t.Fatalf("second Ensure: created=%v err=%v", created, err)
	}
	if _, err := creators.Ensure(dbc, "  "); err == nil {
		t.Fatalf("expected error for blank creator id")
	}

	lid := testutil.ID("learner")
	for i := 0; i < 3; i++ {
		if _, err := learners.Ensure(dbc, lid); err != nil {
			t.Fatalf("learner Ensure #%d: %v", i, err)
		}
	}
	var n int64
	if err := tx.Model(&types.Learner{}).Where("id = ?", lid).Count(&n).Error; err != nil || n != 1 {
		t.Fatalf("learner rows: err=%v n=%d", err, n)
	}
}

func TestCourseTreeReads(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	courses := NewCourseRepo(db, log)
	modules := NewModuleRepo(db, log)
	lessons := NewLessonRepo(db, log)
	quizzes := NewQuizRepo(db, log)
	questions := NewQuestionRepo(db, log)
	answers := NewAnswerOptionRepo(db, log)

	seeded := testutil.SeedCourseTree(t, ctx, tx, "creator-1", 2, 0, 3)
	quiz := testutil.SeedQuiz(t, ctx, tx, seeded.Modules[0].ID, 2)

	got, err := courses.GetByID(dbc, seeded.Course.ID)
	if err != nil || got == nil || got.Title != "course" {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
	if missing, err := courses.GetByID(dbc, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByID missing: got=%+v err=%v", missing, err)
	}
	if ok, err := courses.Exists(dbc, seeded.Course.ID); err != nil || !ok {
		t.Fatalf("Exists: ok=%v err=%v", ok, err)
	}

	mods, err := modules.ListByCourseID(dbc, seeded.Course.ID)
	if err != nil || len(mods) != 3 {
		t.Fatalf("ListByCourseID: err=%v len=%d", err, len(mods))
	}
	for i, m := range mods {
		if m.Position != int32(i) {
			t.Fatalf("modules out of order: %+v", mods)
		}
	}
	if n, err := modules.CountByCourseID(dbc, seeded.Course.ID); err != nil || n != 3 {
		t.Fatalf("CountByCourseID: err=%v n=%d", err, n)
	}

	if n, err := lessons.CountByModuleID(dbc, seeded.Modules[1].ID); err != nil || n != 0 {
		t.Fatalf("CountByModuleID empty module: err=%v n=%d", err, n)
	}
	if n, err := lessons.CountByCourseID(dbc, seeded.Course.ID); err != nil || n != 5 {
		t.Fatalf("CountByCourseID lessons: err=%v n=%d", err, n)
	}
	ls, err := lessons.ListByModuleIDs(dbc, []uuid.UUID{seeded.Modules[2].ID})
	if err != nil || len(ls) != 3 || ls[0].Position != 0 || ls[2].Position != 2 {
		t.Fatalf("ListByModuleIDs: err=%v rows=%+v", err, ls)
	}

	qs, err := quizzes.ListByModuleIDs(dbc, []uuid.UUID{seeded.Modules[0].ID, seeded.Modules[1].ID})
	if err != nil || len(qs) != 1 || qs[0].ID != quiz.ID {
		t.Fatalf("quiz ListByModuleIDs: err=%v rows=%+v", err, qs)
	}
	qq, err := questions.ListByQuizIDs(dbc, []uuid.UUID{quiz.ID})
	if err != nil || len(qq) != 2 {
		t.Fatalf("ListByQuizIDs: err=%v len=%d", err, len(qq))
	}
	opts, err := answers.ListByQuestionIDs(dbc, []uuid.UUID{qq[0].ID})
	if err != nil || len(opts) != 2 || !opts[0].IsCorrect || opts[1].IsCorrect {
		t.Fatalf("ListByQuestionIDs: err=%v rows=%+v", err, opts)
	}
}

func TestCoursePreviewsOrderByEnrollments(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	courses := NewCourseRepo(db, testutil.Logger(t))

	a := testutil.SeedCourseTree(t, ctx, tx, "creator-a", 1)
	b := testutil.SeedCourseTree(t, ctx, tx, "creator-a", 1, 1)
	c := testutil.SeedCourseTree(t, ctx, tx, "creator-b")
	testutil.SeedEnrollment(t, ctx, tx, "l1", b.Course.ID)
	testutil.SeedEnrollment(t, ctx, tx, "l2", b.Course.ID)
	testutil.SeedEnrollment(t, ctx, tx, "l1", a.Course.ID)
	if err := tx.Create(&types.CourseCompletion{LearnerID: "l1", CourseID: b.Course.ID}).Error; err != nil {
		t.Fatalf("seed course completion: %v", err)
	}

	all, err := courses.ListPreviews(dbc, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListPreviews: err=%v len=%d", err, len(all))
	}
	if all[0].ID != b.Course.ID || all[1].ID != a.Course.ID || all[2].ID != c.Course.ID {
		t.Fatalf("unexpected order: %+v", all)
	}
	if all[0].NumEnrollments != 2 || all[0].NumCompletions != 1 || all[0].NumModules != 2 || all[0].Creator != "creator-a" {
		t.Fatalf("unexpected preview counts: %+v", all[0])
	}

	top, err := courses.ListPreviews(dbc, 1)
	if err != nil || len(top) != 1 || top[0].ID != b.Course.ID {
		t.Fatalf("ListPreviews limit: err=%v rows=%+v", err, top)
	}

	created, err := courses.ListCreatedBy(dbc, "creator-a")
	if err != nil || len(created) != 2 {
		t.Fatalf("ListCreatedBy: err=%v len=%d", err, len(created))
	}
	for _, cc := range created {
		if cc.CourseID == b.Course.ID && (cc.NumLearners != 2 || cc.NumCompleted != 1) {
			t.Fatalf("created course counts: %+v", cc)
		}
	}
	if n, err := courses.Count(dbc); err != nil || n != 3 {
		t.Fatalf("Count: err=%v n=%d", err, n)
	}
}
