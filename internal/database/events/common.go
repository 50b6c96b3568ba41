package events

import "github.com/SergeyKozhin/events-sync/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var columns = []string{
	"id",
	"name",
	"description",
	"location",
	"category",
	"date",
	"time",
	"image",
	"organizer",
	"attendees",
	"created_at",
}

var baseQuery = database.PSQL.
	Select(columns...).
	From(database.EventsTable)

const schema = `create table if not exists ` + database.EventsTable + `
(
    id          text primary key,
    name        text        not null,
    description text        not null default '',
    location    text        not null default '',
    category    text        not null default '',
    date        date,
    time        text        not null default '',
    image       text        not null default '',
    organizer   text        not null default '',
    attendees   text[]      not null default '{}',
    created_at  timestamptz,
    synced_at   timestamptz not null default now()
)`
