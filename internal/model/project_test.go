package model

import "testing"

func TestProject_Route(t *testing.T) {
	p := Project{ID: 7}
	if got := p.Route(); got != "/project/7" {
		t.Errorf("Route() = %s, expected /project/7", got)
	}
}

func TestProject_GetDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		expected string
	}{
		{"Analytics", 1, "Analytics"},
		{"  ", 2, "Project 2"},
		{"", 3, "Project 3"},
	}

	for _, test := range tests {
		p := Project{ID: test.id, Name: test.name}
		if result := p.GetDisplayName(); result != test.expected {
			t.Errorf("GetDisplayName() with Name=%q = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestProject_Initials(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"sales warehouse", "SW"},
		{"billing", "B"},
		{"one two three", "OT"},
		{"édition", "É"},
	}

	for _, test := range tests {
		p := Project{ID: 1, Name: test.name}
		if result := p.Initials(); result != test.expected {
			t.Errorf("Initials() with Name=%q = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestProject_HasIcon(t *testing.T) {
	empty := ""
	path := "icons/1.png"

	if (Project{}).HasIcon() {
		t.Error("project without icon path should not have icon")
	}
	if (Project{IconPath: &empty}).HasIcon() {
		t.Error("project with empty icon path should not have icon")
	}
	if !(Project{IconPath: &path}).HasIcon() {
		t.Error("project with icon path should have icon")
	}
}

func TestUser_GetDisplayName(t *testing.T) {
	tests := []struct {
		user     User
		expected string
	}{
		{User{ID: "u1", FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{User{ID: "u1", FirstName: "Ada"}, "Ada"},
		{User{ID: "u1", Username: "ada"}, "ada"},
		{User{ID: "u1", Email: "ada@example.com"}, "ada@example.com"},
		{User{ID: "u1"}, "u1"},
	}

	for _, test := range tests {
		if result := test.user.GetDisplayName(); result != test.expected {
			t.Errorf("GetDisplayName() = %s, expected %s", result, test.expected)
		}
	}
}
