package sqlinline

const QInsertAccount = `--sql bbd1e50a-826f-45d7-9534-6e254b4bd6d7
insert into accounts (id, username, email, name, image, bio, donation_goal, promptpay_id, bank_account, created_at, updated_at)
values ($1::uuid, $2::text, lower($3::text), $4::text, $5::text, $6::text, $7::bigint,
        nullif($8::text, ''), nullif($9::text, ''), $10::timestamptz, $10::timestamptz);
`

const QSelectAccountByID = `--sql 8b0d57ed-27a4-4187-98ca-512d9df81514
select id::text, username, email, name, image, bio, donation_goal,
       coalesce(promptpay_id, ''), coalesce(bank_account, ''), created_at, updated_at
from accounts
where id = $1::uuid
limit 1;
`

const QSelectAccountByUsername = `--sql fceee900-e84a-4693-87f8-d45f2344e318
select id::text, username, email, name, image, bio, donation_goal,
       coalesce(promptpay_id, ''), coalesce(bank_account, ''), created_at, updated_at
from accounts
where username = $1::text
limit 1;
`

const QUpdateAccountGoal = `--sql 831e68a4-2a99-4fe9-a316-92b502f9c362
update accounts
set donation_goal = $2::bigint,
    updated_at = $3::timestamptz
where id = $1::uuid
returning id::text, username, email, name, image, bio, donation_goal,
          coalesce(promptpay_id, ''), coalesce(bank_account, ''), created_at, updated_at;
`
