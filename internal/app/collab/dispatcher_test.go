package collab

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MessiahAndrw/Collaborate/internal/app/discussions"
	"github.com/MessiahAndrw/Collaborate/internal/app/settings"
	"github.com/MessiahAndrw/Collaborate/internal/app/users"
)

// recordingEmitter captures every outbound event in order.
type recordingEmitter struct {
	events []Event
}

func (e *recordingEmitter) Emit(event string, data any) {
	e.events = append(e.events, Event{Name: event, Data: data})
}

func (e *recordingEmitter) single(t *testing.T) Event {
	t.Helper()
	require.Len(t, e.events, 1)
	return e.events[0]
}

// fakeUsers scripts the user collaborator and records calls.
type fakeUsers struct {
	authResult users.AuthResult
	authErr    error
	authCalls  []string

	createStatus string
	createErr    error
	createCalls  []string

	resendCalls []string

	verifyStatus string
	verifyCalls  []string
}

func (f *fakeUsers) Authenticate(ctx context.Context, username, password string) (users.AuthResult, error) {
	f.authCalls = append(f.authCalls, username)
	return f.authResult, f.authErr
}

func (f *fakeUsers) CreateUser(ctx context.Context, username, realname, email string) (string, error) {
	f.createCalls = append(f.createCalls, username)
	return f.createStatus, f.createErr
}

func (f *fakeUsers) ResendVerificationEmail(ctx context.Context, username string) error {
	f.resendCalls = append(f.resendCalls, username)
	return nil
}

func (f *fakeUsers) VerifyEmail(ctx context.Context, username, token string) (string, error) {
	f.verifyCalls = append(f.verifyCalls, username)
	return f.verifyStatus, nil
}

func (f *fakeUsers) GlobalUserSettings() users.GlobalUserSettings {
	return users.GlobalUserSettings{
		MinUsernameLength: 4,
		MaxUsernameLength: 20,
		MinPasswordLength: 6,
	}
}

// fakeDiscussions scripts the discussion collaborator. Mutations edit the
// in-memory forum list so success responses reflect the change, and the
// ordered calls slice records the chain sequencing.
type fakeDiscussions struct {
	threadsStatus string
	threads       []discussions.Thread
	threadsErr    error

	postsStatus string
	posts       []discussions.Post

	forumsStatus string
	forums       []discussions.Forum

	createStatus string
	setStatus    string
	deleteStatus string

	calls []string
}

func newFakeDiscussions() *fakeDiscussions {
	return &fakeDiscussions{
		threadsStatus: discussions.StatusSuccess,
		threads:       []discussions.Thread{{ID: "t1", ForumID: "f1", Title: "First thread"}},
		postsStatus:   discussions.StatusSuccess,
		posts:         []discussions.Post{{ID: "p1", ThreadID: "t1", Body: "First post"}},
		forumsStatus:  discussions.StatusSuccess,
		forums:        []discussions.Forum{{ID: "f1", Title: "General"}},
		createStatus:  discussions.StatusSuccess,
		setStatus:     discussions.StatusSuccess,
		deleteStatus:  discussions.StatusSuccess,
	}
}

func (f *fakeDiscussions) GetRecentThreads(ctx context.Context) (string, []discussions.Thread, error) {
	f.calls = append(f.calls, "GetRecentThreads")
	return f.threadsStatus, f.threads, f.threadsErr
}

func (f *fakeDiscussions) GetRecentPosts(ctx context.Context) (string, []discussions.Post, error) {
	f.calls = append(f.calls, "GetRecentPosts")
	return f.postsStatus, f.posts, nil
}

func (f *fakeDiscussions) GetDiscussionForums(ctx context.Context) (string, []discussions.Forum, error) {
	f.calls = append(f.calls, "GetDiscussionForums")
	return f.forumsStatus, f.forums, nil
}

func (f *fakeDiscussions) CreateDiscussionForum(ctx context.Context, title string) (string, error) {
	f.calls = append(f.calls, "CreateDiscussionForum")
	if f.createStatus == discussions.StatusSuccess {
		f.forums = append(f.forums, discussions.Forum{ID: "f-new", Title: title})
	}
	return f.createStatus, nil
}

func (f *fakeDiscussions) SetDiscussionForumTitle(ctx context.Context, id, title string) (string, error) {
	f.calls = append(f.calls, "SetDiscussionForumTitle")
	if f.setStatus == discussions.StatusSuccess {
		for i := range f.forums {
			if f.forums[i].ID == id {
				f.forums[i].Title = title
			}
		}
	}
	return f.setStatus, nil
}

func (f *fakeDiscussions) DeleteDiscussionForum(ctx context.Context, id string) (string, error) {
	f.calls = append(f.calls, "DeleteDiscussionForum")
	if f.deleteStatus == discussions.StatusSuccess {
		kept := f.forums[:0]
		for _, forum := range f.forums {
			if forum.ID != id {
				kept = append(kept, forum)
			}
		}
		f.forums = kept
	}
	return f.deleteStatus, nil
}

func newTestDispatcher(publicAccess bool, fu *fakeUsers, fd *fakeDiscussions) *Dispatcher {
	return NewDispatcher(fu, fd, settings.Global{
		CommunityName: "Test Community",
		PublicAccess:  publicAccess,
	})
}

func dispatch(d *Dispatcher, sess *Session, out Emitter, name, data string) {
	cmd := Command{Name: name}
	if data != "" {
		cmd.Data = json.RawMessage(data)
	}
	d.Dispatch(context.Background(), sess, out, cmd)
}

func adminSession() *Session {
	sess := NewSession()
	sess.Login("admin-1", true, false)
	return sess
}

func memberSession() *Session {
	sess := NewSession()
	sess.Login("member-1", false, false)
	return sess
}

// --- login ---

func TestLoginMissingPasswordAnswersNoUser(t *testing.T) {
	fu := &fakeUsers{}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdLogin, `{"username":"a"}`)

	ev := out.single(t)
	require.Equal(t, "loginResponse", ev.Name)
	require.Equal(t, statusOnly("nouser"), ev.Data)
	require.Empty(t, fu.authCalls)
}

func TestLoginMalformedPayloadsAnswerNoUser(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"no payload", ""},
		{"null payload", `null`},
		{"non-object payload", `"hello"`},
		{"array payload", `[1,2]`},
		{"missing both fields", `{}`},
		{"missing username", `{"password":"pw"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fu := &fakeUsers{}
			d := newTestDispatcher(true, fu, newFakeDiscussions())
			out := &recordingEmitter{}

			dispatch(d, NewSession(), out, CmdLogin, tc.data)

			ev := out.single(t)
			require.Equal(t, "loginResponse", ev.Name)
			require.Equal(t, statusOnly("nouser"), ev.Data)
			require.Empty(t, fu.authCalls)
		})
	}
}

func TestLoginShapeCheckRunsBeforeStateCheck(t *testing.T) {
	// A malformed login from a signed-in session still answers nouser.
	fu := &fakeUsers{}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, memberSession(), out, CmdLogin, `{"username":"a"}`)

	ev := out.single(t)
	require.Equal(t, statusOnly("nouser"), ev.Data)
}

func TestLoginWhileAuthenticatedIsDroppedSilently(t *testing.T) {
	fu := &fakeUsers{}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}
	sess := memberSession()

	dispatch(d, sess, out, CmdLogin, `{"username":"a","password":"b"}`)

	require.Empty(t, out.events)
	require.Empty(t, fu.authCalls)
	require.Equal(t, "member-1", sess.UserID)
}

func TestLoginSuccessUpgradesSession(t *testing.T) {
	fu := &fakeUsers{authResult: users.AuthResult{
		Status:         "success",
		UserID:         "user-42",
		ForumAdmin:     true,
		ForumModerator: true,
	}}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}
	sess := NewSession()

	dispatch(d, sess, out, CmdLogin, `{"username":"alice","password":"secret"}`)

	require.True(t, sess.Authenticated)
	require.Equal(t, "user-42", sess.UserID)
	require.True(t, sess.ForumAdmin)
	require.True(t, sess.ForumModerator)

	ev := out.single(t)
	require.Equal(t, "loginResponse", ev.Name)
	require.Equal(t, fu.authResult, ev.Data)
	require.Equal(t, []string{"alice"}, fu.authCalls)
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	fu := &fakeUsers{authResult: users.AuthResult{Status: "badpassword"}}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}
	sess := NewSession()

	dispatch(d, sess, out, CmdLogin, `{"username":"alice","password":"wrong"}`)

	require.False(t, sess.Authenticated)
	require.Empty(t, sess.UserID)

	ev := out.single(t)
	require.Equal(t, users.AuthResult{Status: "badpassword"}, ev.Data)
}

func TestLoginCollaboratorFaultStillAnswers(t *testing.T) {
	fu := &fakeUsers{authErr: errors.New("db down")}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}
	sess := NewSession()

	dispatch(d, sess, out, CmdLogin, `{"username":"alice","password":"pw"}`)

	require.False(t, sess.Authenticated)
	ev := out.single(t)
	require.Equal(t, statusOnly("error"), ev.Data)
}

// --- createUser ---

func TestCreateUserMalformedAnswersBadUsername(t *testing.T) {
	fu := &fakeUsers{}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdCreateUser, `{"username":"bob"}`)

	ev := out.single(t)
	require.Equal(t, "createUserResponse", ev.Name)
	require.Equal(t, statusOnly("badusername"), ev.Data)
	require.Empty(t, fu.createCalls)
}

func TestCreateUserWhileAuthenticatedAnswersBadUsername(t *testing.T) {
	fu := &fakeUsers{}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, memberSession(), out, CmdCreateUser,
		`{"username":"bob","realname":"Bob","email":"bob@example.com"}`)

	ev := out.single(t)
	require.Equal(t, statusOnly("badusername"), ev.Data)
	require.Empty(t, fu.createCalls)
}

func TestCreateUserForwardsCollaboratorStatus(t *testing.T) {
	fu := &fakeUsers{createStatus: "userexists"}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdCreateUser,
		`{"username":"bob","realname":"Bob","email":"bob@example.com"}`)

	ev := out.single(t)
	require.Equal(t, statusOnly("userexists"), ev.Data)
	require.Equal(t, []string{"bob"}, fu.createCalls)
}

// --- resendVerificationEmail ---

func TestResendVerificationNeverAnswers(t *testing.T) {
	fu := &fakeUsers{}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdResendVerificationEmail, `{"username":"bob"}`)

	require.Empty(t, out.events)
	require.Equal(t, []string{"bob"}, fu.resendCalls)
}

func TestResendVerificationMalformedOrAuthenticatedIsSilent(t *testing.T) {
	fu := &fakeUsers{}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdResendVerificationEmail, `{}`)
	dispatch(d, memberSession(), out, CmdResendVerificationEmail, `{"username":"bob"}`)

	require.Empty(t, out.events)
	require.Empty(t, fu.resendCalls)
}

// --- verifyEmail ---

func TestVerifyEmailMalformedAnswersBadCode(t *testing.T) {
	fu := &fakeUsers{}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdVerifyEmail, `{"username":"bob"}`)

	ev := out.single(t)
	require.Equal(t, "verifyEmailResponse", ev.Name)
	require.Equal(t, statusOnly("badcode"), ev.Data)
	require.Empty(t, fu.verifyCalls)
}

func TestVerifyEmailWhileAuthenticatedAnswersBadCode(t *testing.T) {
	fu := &fakeUsers{}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, memberSession(), out, CmdVerifyEmail, `{"username":"bob","token":"tok"}`)

	ev := out.single(t)
	require.Equal(t, statusOnly("badcode"), ev.Data)
	require.Empty(t, fu.verifyCalls)
}

func TestVerifyEmailForwardsCollaboratorStatus(t *testing.T) {
	fu := &fakeUsers{verifyStatus: "success"}
	d := newTestDispatcher(true, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdVerifyEmail, `{"username":"bob","token":"tok"}`)

	ev := out.single(t)
	require.Equal(t, statusOnly("success"), ev.Data)
	require.Equal(t, []string{"bob"}, fu.verifyCalls)
}

// --- logout ---

func TestLogoutCommandResetsSessionAndIsSilent(t *testing.T) {
	d := newTestDispatcher(true, &fakeUsers{}, newFakeDiscussions())
	out := &recordingEmitter{}
	sess := adminSession()

	dispatch(d, sess, out, CmdLogout, "")
	require.False(t, sess.Authenticated)
	require.Empty(t, out.events)

	// Second logout is a no-op, still silent.
	dispatch(d, sess, out, CmdLogout, "")
	require.False(t, sess.Authenticated)
	require.Empty(t, out.events)
}

// --- getGlobalUserSettings ---

func TestGetGlobalUserSettingsIsUnconditional(t *testing.T) {
	fu := &fakeUsers{}
	d := newTestDispatcher(false, fu, newFakeDiscussions())
	out := &recordingEmitter{}

	// Even unauthenticated with public access off.
	dispatch(d, NewSession(), out, CmdGetGlobalUserSettings, "")

	ev := out.single(t)
	require.Equal(t, "globalUserSettings", ev.Name)
	require.Equal(t, fu.GlobalUserSettings(), ev.Data)
}

// --- loadHomePage ---

func TestLoadHomePageAnswersEvenOnCollaboratorFailure(t *testing.T) {
	fd := newFakeDiscussions()
	fd.threadsStatus = "error"
	fd.threads = nil
	d := newTestDispatcher(false, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdLoadHomePage, "")

	ev := out.single(t)
	require.Equal(t, "loadHomePageResponse", ev.Name)
	require.Equal(t, threadsResponse{Threads: nil}, ev.Data)
}

// --- recentThreads ---

func TestRecentThreadsGatedByPublicAccess(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(false, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdRecentThreads, "")

	require.Empty(t, out.events)
	require.Empty(t, fd.calls)
}

func TestRecentThreadsAllowedWhenPublicAccessEnabled(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdRecentThreads, "")

	ev := out.single(t)
	require.Equal(t, "recentThreadsResponse", ev.Name)
	require.Equal(t, threadsResponse{Threads: fd.threads}, ev.Data)
}

func TestRecentThreadsAllowedWhenAuthenticated(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(false, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, memberSession(), out, CmdRecentThreads, "")

	require.Len(t, out.events, 1)
}

func TestRecentThreadsSwallowsCollaboratorFailure(t *testing.T) {
	fd := newFakeDiscussions()
	fd.threadsStatus = "error"
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdRecentThreads, "")

	require.Empty(t, out.events)
}

// --- loadDiscussions ---

func TestLoadDiscussionsAggregatesAllThreeSteps(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdLoadDiscussions, "")

	require.Equal(t,
		[]string{"GetRecentThreads", "GetRecentPosts", "GetDiscussionForums"},
		fd.calls)

	ev := out.single(t)
	require.Equal(t, "loadDiscussionsResponse", ev.Name)
	require.Equal(t, loadDiscussionsResponse{
		Threads: fd.threads,
		Posts:   fd.posts,
		Forums:  fd.forums,
	}, ev.Data)
}

func TestLoadDiscussionsThirdStepFailureEmitsNothing(t *testing.T) {
	fd := newFakeDiscussions()
	fd.forumsStatus = "error"
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdLoadDiscussions, "")

	// All three steps ran, but the failure at the end swallows the response.
	require.Equal(t,
		[]string{"GetRecentThreads", "GetRecentPosts", "GetDiscussionForums"},
		fd.calls)
	require.Empty(t, out.events)
}

func TestLoadDiscussionsSecondStepFailureShortCircuits(t *testing.T) {
	fd := newFakeDiscussions()
	fd.postsStatus = "error"
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdLoadDiscussions, "")

	require.Equal(t, []string{"GetRecentThreads", "GetRecentPosts"}, fd.calls)
	require.Empty(t, out.events)
}

func TestLoadDiscussionsFirstStepInfrastructureFaultIsSilent(t *testing.T) {
	fd := newFakeDiscussions()
	fd.threadsErr = errors.New("db down")
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdLoadDiscussions, "")

	require.Equal(t, []string{"GetRecentThreads"}, fd.calls)
	require.Empty(t, out.events)
}

func TestLoadDiscussionsGatedByPublicAccess(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(false, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdLoadDiscussions, "")

	require.Empty(t, out.events)
	require.Empty(t, fd.calls)
}

// --- createDiscussionForum ---

func TestCreateForumUnauthenticatedIsSilent(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdCreateForum, `{"title":"New Forum"}`)

	require.Empty(t, out.events)
	require.Empty(t, fd.calls)
}

func TestCreateForumMalformedIsSilent(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	// title must be a string.
	dispatch(d, adminSession(), out, CmdCreateForum, `{"title":5}`)
	dispatch(d, adminSession(), out, CmdCreateForum, `{}`)

	require.Empty(t, out.events)
	require.Empty(t, fd.calls)
}

func TestCreateForumWithoutAdminRoleAnswersNoPermission(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, memberSession(), out, CmdCreateForum, `{"title":"New Forum"}`)

	ev := out.single(t)
	require.Equal(t, "createDiscussionForumResponse", ev.Name)
	require.Equal(t, statusOnly("nopermission"), ev.Data)
	require.Empty(t, fd.calls)
}

func TestCreateForumWhitespaceTitleAnswersBadName(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, adminSession(), out, CmdCreateForum, `{"title":"   "}`)

	ev := out.single(t)
	require.Equal(t, statusOnly("badname"), ev.Data)
	require.Empty(t, fd.calls)
}

func TestCreateForumSuccessFoldsInForumList(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, adminSession(), out, CmdCreateForum, `{"title":"  New Forum  "}`)

	require.Equal(t, []string{"CreateDiscussionForum", "GetDiscussionForums"}, fd.calls)

	ev := out.single(t)
	require.Equal(t, "createDiscussionForumResponse", ev.Name)
	require.Equal(t, forumListResponse{
		Status: "success",
		Forums: []discussions.Forum{
			{ID: "f1", Title: "General"},
			{ID: "f-new", Title: "New Forum"},
		},
	}, ev.Data)
}

func TestCreateForumFailureForwardsStatusWithoutRefetch(t *testing.T) {
	fd := newFakeDiscussions()
	fd.createStatus = "error"
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, adminSession(), out, CmdCreateForum, `{"title":"New Forum"}`)

	require.Equal(t, []string{"CreateDiscussionForum"}, fd.calls)

	ev := out.single(t)
	require.Equal(t, statusOnly("error"), ev.Data)
}

func TestCreateForumRefetchFailureForwardsStatusWithoutList(t *testing.T) {
	fd := newFakeDiscussions()
	fd.forumsStatus = "error"
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, adminSession(), out, CmdCreateForum, `{"title":"New Forum"}`)

	require.Equal(t, []string{"CreateDiscussionForum", "GetDiscussionForums"}, fd.calls)

	ev := out.single(t)
	require.Equal(t, statusOnly("error"), ev.Data)
}

// --- setDiscussionForumTitle ---

func TestSetForumTitleMissingIDIsSilent(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, adminSession(), out, CmdSetForumTitle, `{"title":"Renamed"}`)

	require.Empty(t, out.events)
	require.Empty(t, fd.calls)
}

func TestSetForumTitleWithoutAdminRoleAnswersNoPermission(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, memberSession(), out, CmdSetForumTitle, `{"id":"f1","title":"Renamed"}`)

	ev := out.single(t)
	require.Equal(t, "setDiscussionForumTitleResponse", ev.Name)
	require.Equal(t, statusOnly("nopermission"), ev.Data)
}

func TestSetForumTitleSuccessFoldsInForumList(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, adminSession(), out, CmdSetForumTitle, `{"id":"f1","title":"Renamed"}`)

	ev := out.single(t)
	require.Equal(t, forumListResponse{
		Status: "success",
		Forums: []discussions.Forum{{ID: "f1", Title: "Renamed"}},
	}, ev.Data)
}

func TestSetForumTitleNotFoundForwardsStatus(t *testing.T) {
	fd := newFakeDiscussions()
	fd.setStatus = "notfound"
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, adminSession(), out, CmdSetForumTitle, `{"id":"missing","title":"Renamed"}`)

	ev := out.single(t)
	require.Equal(t, statusOnly("notfound"), ev.Data)
}

// --- deleteDiscussionForum ---

func TestDeleteForumWithoutAdminRoleAnswersNoPermission(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, memberSession(), out, CmdDeleteForum, `{"id":"f1"}`)

	ev := out.single(t)
	require.Equal(t, "deleteDiscussionForumResponse", ev.Name)
	require.Equal(t, statusOnly("nopermission"), ev.Data)
	require.Empty(t, fd.calls)
}

func TestDeleteForumSuccessReflectsDeletion(t *testing.T) {
	fd := newFakeDiscussions()
	fd.forums = []discussions.Forum{
		{ID: "f1", Title: "General"},
		{ID: "f2", Title: "Doomed"},
	}
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, adminSession(), out, CmdDeleteForum, `{"id":"f2"}`)

	require.Equal(t, []string{"DeleteDiscussionForum", "GetDiscussionForums"}, fd.calls)

	ev := out.single(t)
	require.Equal(t, forumListResponse{
		Status: "success",
		Forums: []discussions.Forum{{ID: "f1", Title: "General"}},
	}, ev.Data)
}

func TestDeleteForumUnauthenticatedIsSilent(t *testing.T) {
	fd := newFakeDiscussions()
	d := newTestDispatcher(true, &fakeUsers{}, fd)
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, CmdDeleteForum, `{"id":"f1"}`)

	require.Empty(t, out.events)
	require.Empty(t, fd.calls)
}

// --- misc ---

func TestUnknownCommandIsDropped(t *testing.T) {
	d := newTestDispatcher(true, &fakeUsers{}, newFakeDiscussions())
	out := &recordingEmitter{}

	dispatch(d, NewSession(), out, "selfDestruct", `{}`)

	require.Empty(t, out.events)
}
