package sqlinline

// QInsertDonation inserts a pending donation only when the receiving account
// exists. It always returns one row: account_found, the inserted id (null on a
// repeated idempotency key) and the recipient display name.
const QInsertDonation = `--sql aa03cc7a-c155-4886-856c-634f230000f3
with recipient as (
    select id, coalesce(nullif(name, ''), username) as display_name
    from accounts
    where id = $2::uuid
),
inserted as (
    insert into donations (
        id, account_id, amount, donor_name, donor_email, message,
        payment_method, payment_status, transaction_id, idempotency_key, created_at, updated_at
    )
    select $1::uuid, r.id, $3::bigint, $4::text, nullif($5::text, ''), nullif($6::text, ''),
           $7::text, 'pending', null, nullif($8::text, ''), $9::timestamptz, $9::timestamptz
    from recipient r
    on conflict (account_id, idempotency_key) where idempotency_key is not null do nothing
    returning id
)
select exists(select 1 from recipient),
       (select id::text from inserted),
       (select display_name from recipient);
`

const QSelectDonationByID = `--sql e788ceb7-f484-4bb8-88d5-dc769768313b
select d.id::text, d.account_id::text, d.amount, d.donor_name, coalesce(d.donor_email, ''), coalesce(d.message, ''),
       d.payment_method, d.payment_status, d.transaction_id, d.idempotency_key, d.created_at, d.updated_at,
       coalesce(nullif(a.name, ''), a.username)
from donations d
join accounts a on a.id = d.account_id
where d.id = $1::uuid
limit 1;
`

const QSelectDonationByIdempotencyKey = `--sql 8ba37233-b169-4d48-8936-9c39105e5d59
select d.id::text, d.account_id::text, d.amount, d.donor_name, coalesce(d.donor_email, ''), coalesce(d.message, ''),
       d.payment_method, d.payment_status, d.transaction_id, d.idempotency_key, d.created_at, d.updated_at,
       coalesce(nullif(a.name, ''), a.username)
from donations d
join accounts a on a.id = d.account_id
where d.account_id = $1::uuid
  and d.idempotency_key = $2::text
limit 1;
`

// QTransitionDonation moves a donation out of pending. The status predicate
// makes it a compare-and-swap: a row that is already terminal is not updated.
const QTransitionDonation = `--sql 773aa58c-f1f5-4d60-90e4-74b3eb29dfda
update donations d
set payment_status = $2::text,
    transaction_id = coalesce(nullif($3::text, ''), d.transaction_id),
    updated_at = $4::timestamptz
from accounts a
where d.id = $1::uuid
  and d.payment_status = 'pending'
  and a.id = d.account_id
returning d.id::text, d.account_id::text, d.amount, d.donor_name, coalesce(d.donor_email, ''), coalesce(d.message, ''),
          d.payment_method, d.payment_status, d.transaction_id, d.idempotency_key, d.created_at, d.updated_at,
          coalesce(nullif(a.name, ''), a.username);
`

const QSelectDonationStatus = `--sql ec6d4dbd-6414-4366-925c-0a92114b70ee
select payment_status
from donations
where id = $1::uuid
limit 1;
`

// QListDonations pages one account's donations, newest first, with the total
// match count carried on every row.
const QListDonations = `--sql 887ace25-c342-40c3-b359-8510b3e94cf8
select d.id::text, d.account_id::text, d.amount, d.donor_name, coalesce(d.donor_email, ''), coalesce(d.message, ''),
       d.payment_method, d.payment_status, d.transaction_id, d.idempotency_key, d.created_at, d.updated_at,
       '' as recipient_name,
       count(*) over () as total
from donations d
where d.account_id = $1::uuid
  and ($2::text = '' or d.payment_status = $2::text)
order by d.created_at desc, d.id desc
limit $3::bigint offset $4::bigint;
`

const QCountDonations = `--sql 921806c6-e1d7-41b9-b0a9-974837ae3b72
select count(*)
from donations
where account_id = $1::uuid
  and ($2::text = '' or payment_status = $2::text);
`

// QCreatorStats derives every creator statistic in one statement so a single
// call never sees a donation in two states.
const QCreatorStats = `--sql 3c6f384a-3ea8-4055-8b2e-769d7c74ba8c
select a.donation_goal,
       coalesce(sum(d.amount) filter (where d.payment_status = 'confirmed'), 0)::bigint,
       count(distinct d.donor_name) filter (where d.payment_status = 'confirmed'),
       coalesce(sum(d.amount) filter (where d.payment_status = 'confirmed' and d.created_at >= $2::timestamptz), 0)::bigint,
       count(d.id) filter (where d.payment_status = 'pending')
from accounts a
left join donations d on d.account_id = a.id
where a.id = $1::uuid
group by a.id, a.donation_goal;
`
