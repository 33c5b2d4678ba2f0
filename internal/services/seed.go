package services

import (
	"time"

	"github.com/yukikurage/kanbanflow/internal/models"
)

type memberSeed struct {
	name      string
	role      models.MemberRole
	email     string
	avatarURL string
}

var teamMembersSeed = []memberSeed{
	{"Alice Johnson", models.RoleAdmin, "alice.j@example.com", "https://i.pravatar.cc/150?u=a042581f4e29026704d"},
	{"Bob Williams", models.RoleMember, "bob.w@example.com", "https://i.pravatar.cc/150?u=a042581f4e29026705d"},
	{"Charlie Brown", models.RoleMember, "charlie.b@example.com", "https://i.pravatar.cc/150?u=a042581f4e29026706d"},
	{"Diana Miller", models.RoleMember, "diana.m@example.com", "https://i.pravatar.cc/150?u=a042581f4e29026707d"},
	{"Ethan Davis", models.RoleMember, "ethan.d@example.com", "https://i.pravatar.cc/150?u=a042581f4e29026708d"},
	{"Fiona Garcia", models.RoleMember, "fiona.g@example.com", "https://i.pravatar.cc/150?u=a042581f4e29026709d"},
}

type taskSeed struct {
	title       string
	description string
	status      models.TaskStatus
	priority    models.TaskPriority
	dueInDays   int
}

var tasksSeed = []taskSeed{
	{
		title:       "Design new landing page",
		description: "Create mockups and wireframes for the new marketing landing page.",
		status:      models.TaskStatusBacklog,
		priority:    models.PriorityHigh,
		dueInDays:   5,
	},
	{
		title:       "Develop user authentication API",
		description: "Implement endpoints for user registration, login, and password reset.",
		status:      models.TaskStatusTodo,
		priority:    models.PriorityHigh,
		dueInDays:   7,
	},
	{
		title:       "Implement drag-and-drop feature",
		description: "Allow users to drag tasks between columns on the Kanban board.",
		status:      models.TaskStatusInProgress,
		priority:    models.PriorityMedium,
		dueInDays:   2,
	},
	{
		title:       "Fix mobile layout bugs",
		description: "Address responsive design issues on smaller screens.",
		status:      models.TaskStatusInProgress,
		priority:    models.PriorityMedium,
		dueInDays:   -1,
	},
	{
		title:       "Deploy staging environment",
		description: "Set up and deploy the application to the staging server for QA.",
		status:      models.TaskStatusDone,
		priority:    models.PriorityLow,
		dueInDays:   -3,
	},
}

func (b *Board) seedMembers(now time.Time) []models.Member {
	members := make([]models.Member, 0, len(teamMembersSeed))
	for _, s := range teamMembersSeed {
		email := s.email
		members = append(members, models.Member{
			ID:        b.ids(),
			Name:      s.name,
			Role:      s.role,
			Email:     &email,
			AvatarURL: s.avatarURL,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return members
}

// seedTasks distributes the default tasks round-robin over members
func (b *Board) seedTasks(members []models.Member, now time.Time) []models.Task {
	n := len(members)
	tasks := make([]models.Task, 0, len(tasksSeed))
	for i, s := range tasksSeed {
		responsible := members[i%n].ID
		assignees := dedupe([]string{responsible, members[(i+1)%n].ID})
		due := now.AddDate(0, 0, s.dueInDays)
		tasks = append(tasks, models.Task{
			ID:            b.ids(),
			Title:         s.title,
			Description:   s.description,
			DueDate:       &due,
			Status:        s.status,
			Priority:      s.priority,
			AssigneeIDs:   assignees,
			ResponsibleID: responsible,
			Attachments:   []models.Attachment{},
			VoiceNotes:    []models.VoiceNote{},
			Notes:         []models.Note{},
			CreatedAt:     now,
			UpdatedAt:     now,
			UpdatedBy:     responsible,
		})
	}
	return tasks
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
